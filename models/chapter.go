package models

// ChapterLead is the public contact for a chapter, embedded in Chapter.
type ChapterLead struct {
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	Avatar    string `json:"avatar"`
	X         string `json:"x,omitempty"`
	Github    string `json:"github,omitempty"`
	Website   string `json:"website,omitempty"`
	IsFounder bool   `json:"isFounder,omitempty"`
}

// Chapter is static reference data: a city-level community group.
// Seeded once at startup, never mutated by any handler.
type Chapter struct {
	ID      string      `json:"id" gorm:"primaryKey"`
	City    string      `json:"city" gorm:"not null"`
	Country string      `json:"country" gorm:"not null"`
	Color   string      `json:"color"`
	Lead    ChapterLead `json:"lead" gorm:"embedded;embeddedPrefix:lead_"`
}

// SeedChapters is the chapter roster baked into the binary. FirstOrCreate
// semantics on startup keep existing rows untouched.
var SeedChapters = []Chapter{
	{
		ID: "nyc", City: "New York", Country: "USA", Color: "#f59e0b",
		Lead: ChapterLead{Name: "Maya Chen", Handle: "@mayabuilds", Avatar: "https://api.dicebear.com/7.x/notionists/svg?seed=Maya%20Chen&backgroundColor=c0aede", IsFounder: true},
	},
	{
		ID: "sf", City: "San Francisco", Country: "USA", Color: "#38bdf8",
		Lead: ChapterLead{Name: "Dev Patel", Handle: "@devships", Avatar: "https://api.dicebear.com/7.x/notionists/svg?seed=Dev%20Patel&backgroundColor=c0aede"},
	},
	{
		ID: "london", City: "London", Country: "UK", Color: "#a78bfa",
		Lead: ChapterLead{Name: "Sam Okafor", Handle: "@samokafor", Avatar: "https://api.dicebear.com/7.x/notionists/svg?seed=Sam%20Okafor&backgroundColor=c0aede"},
	},
	{
		ID: "berlin", City: "Berlin", Country: "Germany", Color: "#34d399",
		Lead: ChapterLead{Name: "Lena Vogt", Handle: "@lenavogt", Avatar: "https://api.dicebear.com/7.x/notionists/svg?seed=Lena%20Vogt&backgroundColor=c0aede"},
	},
}
