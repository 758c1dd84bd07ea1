package equipment

import "strings"

type CreateEquipmentRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"required,max=100"`
	Description string `json:"description"`
	Condition   string `json:"condition" validate:"required"`
}

func (r *CreateEquipmentRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
}

// UpdateEquipmentRequest replaces every editable field. Status is accepted
// as-is; staff may use it to correct drift by hand.
type UpdateEquipmentRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"required,max=100"`
	Description string `json:"description"`
	Condition   string `json:"condition" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

func (r *UpdateEquipmentRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
}
