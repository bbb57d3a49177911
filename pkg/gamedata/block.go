package gamedata

// Block is one entry of the host's block-type space.
type Block struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}
