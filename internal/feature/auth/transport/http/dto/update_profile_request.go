package dto

// UpdateProfileReq represents the request body for PUT /profile.
// All fields are optional; absent fields are left untouched. Pointer
// fields distinguish "not sent" from "sent empty". The password is
// deliberately not part of this request.
type UpdateProfileReq struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Email       *string `json:"email" binding:"omitempty,email"`
	DOB         *string `json:"DOB" binding:"omitempty,datetime=02/01/06"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,numeric,min=10,max=15"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}
