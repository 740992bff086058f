package db

type Option struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	UpdatedAt int64  `json:"updated_at"`
}

type Transient struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expires_at"`
}
