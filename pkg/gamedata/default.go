package gamedata

const DefaultPaletteName = "default"

// defaultBlocks mirrors the block names the stock coal table refers to.
var defaultBlocks = []Block{
	{0, "Empty", "Air"},
	{1, "Rock_Bedrock", "Bedrock"},
	{2, "Rock_Stone", "Stone"},
	{3, "Rock_Stone_Cobble", "Cobblestone"},
	{4, "Rock_Stone_Mossy", "Mossy Stone"},
	{5, "Soil_Mud_Dry", "Dry Mud"},
	{6, "Soil_Dirt", "Dirt"},
	{7, "Soil_Grass", "Grass"},
	{8, "Rock_Volcanic", "Volcanic Rock"},
	{9, "Rock_Volcanic_Cracked_Lava", "Cracked Volcanic Rock"},
	{10, "Rock_Basalt", "Basalt"},
	{11, "Rock_Basalt_Cobble", "Basalt Cobble"},
	{12, "Rock_Sandstone", "Sandstone"},
	{13, "Rock_Sandstone_Cobble", "Sandstone Cobble"},
	{14, "Rock_Marble", "Marble"},
	{15, "Rock_Marble_Cobble", "Marble Cobble"},
	{16, "Rock_Slate", "Slate"},
	{17, "Rock_Slate_Cobble", "Slate Cobble"},
	{18, "Rock_Shale", "Shale"},
	{19, "Rock_Shale_Cobble", "Shale Cobble"},
	{20, "Rock_Quartzite", "Quartzite"},
	{21, "Rock_Quartzite_Cobble", "Quartzite Cobble"},
	{22, "Rock_Aqua", "Aqua Rock"},
	{23, "Rock_Aqua_Cobble", "Aqua Cobble"},

	{40, "Ore_Coal_Stone", "Coal Ore"},
	{41, "Ore_Coal_Volcanic", "Volcanic Coal Ore"},
	{42, "Ore_Coal_Slate", "Slate Coal Ore"},
	{43, "Ore_Coal_Shale", "Shale Coal Ore"},
	{44, "Ore_Coal_Sandstone", "Sandstone Coal Ore"},
	{45, "Ore_Coal_Quartzite", "Quartzite Coal Ore"},
	{46, "Ore_Coal_Marble", "Marble Coal Ore"},
	{47, "Ore_Coal_Basalt", "Basalt Coal Ore"},
	{48, "Ore_Coal_Aqua", "Aqua Coal Ore"},

	{60, "Ore_Iron_Stone", "Iron Ore"},
	{61, "Ore_Copper_Stone", "Copper Ore"},
	{62, "Ore_Gold_Stone", "Gold Ore"},
	{63, "Ore_Silver_Stone", "Silver Ore"},
	{64, "Ore_Iron_Slate", "Slate Iron Ore"},
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() *Palette {
	p, err := NewPalette(defaultBlocks)
	if err != nil {
		panic(err)
	}
	return p
}

func init() {
	Register(DefaultPaletteName, DefaultPalette)
}
