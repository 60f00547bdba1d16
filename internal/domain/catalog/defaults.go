package catalog

// Default returns the built-in rock catalog used when no catalog file is available.
func Default() Catalog {
	return MustNew(defaultItems)
}

var defaultItems = []Item{
	{
		ID:          1,
		AssetName:   "granite",
		NameTH:      "หินแกรนิต",
		NameEN:      "Granite",
		NameSci:     "Granite",
		Type:        "หินอัคนี",
		Description: "เกิดจากการเย็นตัวของแมกมาใต้พื้นโลกอย่างช้า ๆ",
		Meaning:     "เป็นสัญลักษณ์ของความมั่นคงและแข็งแรง",
	},
	{
		ID:          2,
		AssetName:   "basalt",
		NameTH:      "หินบะซอลต์",
		NameEN:      "Basalt",
		NameSci:     "Basalt",
		Type:        "หินอัคนี",
		Description: "เกิดจากลาวาที่เย็นตัวอย่างรวดเร็วบนพื้นผิวโลก",
		Meaning:     "สื่อถึงพลังของไฟและความแข็งแกร่ง",
	},
	{
		ID:          3,
		AssetName:   "conglomerate",
		NameTH:      "หินกรวดมน",
		NameEN:      "Conglomerate",
		NameSci:     "Conglomerate",
		Type:        "หินตะกอน",
		Description: "เกิดจากการรวมตัวของกรวดและตะกอนที่ถูกกดทับ",
		Meaning:     "สื่อถึงความหลากหลายและความร่วมมือ",
	},
	{
		ID:          4,
		AssetName:   "pumice",
		NameTH:      "หินพัมมิซ",
		NameEN:      "Pumice",
		NameSci:     "Pumice",
		Type:        "หินอัคนี",
		Description: "เกิดจากการเย็นตัวของลาวาที่มีฟองก๊าซมาก",
		Meaning:     "เบาแต่มีพลังในตัวเอง เหมือนแรงบันดาลใจ",
	},
}
