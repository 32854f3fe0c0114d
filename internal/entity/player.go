package entity

type Player struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	IsHost            bool   `json:"is_host"`
	PoisonCandyID     string `json:"poison_candy_id,omitempty"`
	HasSelectedPoison bool   `json:"has_selected_poison"`
}
