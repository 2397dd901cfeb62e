package division

type DivisionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
