package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// deletedResponse is returned by every DELETE endpoint.
type deletedResponse struct {
	Detail string `json:"detail"`
}

var deleted = deletedResponse{Detail: "Deleted"}
