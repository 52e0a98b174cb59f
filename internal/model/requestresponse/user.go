package requestresponse

import "time"

// RegisterUserRequest : тело запроса на создание учётной записи
type RegisterUserRequest struct {
	Identifier string `json:"identifier" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Credential string `json:"credential" example:"P@ssw0rd123"`
	Role       string `json:"role" example:"EMPLOYEE"`
}

// RegisterUserResponse : созданная учётная запись
type RegisterUserResponse struct {
	Response struct {
		UUID       string    `json:"uuid" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
		Identifier string    `json:"identifier" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		Role       string    `json:"role" example:"EMPLOYEE"`
		CreatedAt  time.Time `json:"created_at"`
	} `json:"response"`
}
