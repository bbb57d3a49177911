package gamedata

// BlockRegistry resolves block types by id and by name.
type BlockRegistry interface {
	ByID(id int) (Block, bool)
	ByName(name string) (Block, bool)
	All() []Block
}
