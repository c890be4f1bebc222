package handler

type createStationRequest struct {
	Name       string `json:"name"        validate:"required"`
	NumGrounds *int   `json:"num_grounds" validate:"required,gte=0"`
}

// updateStationRequest is partial: omitted fields keep their stored value.
type updateStationRequest struct {
	Name       *string `json:"name"        validate:"omitempty,min=1"`
	NumGrounds *int    `json:"num_grounds" validate:"omitempty,gte=0"`
}
