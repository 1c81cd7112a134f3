package models

import (
	"time"
)

// Order status codes stored in the database. Display labels live in the
// change describer.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Order priority codes.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Device type codes.
const (
	DeviceComputer  = "computer"
	DeviceLaptop    = "laptop"
	DeviceHousehold = "household_appliance"
	DevicePhone     = "phone"
	DeviceOther     = "other"
)

// ServiceOrder represents a repair order
type ServiceOrder struct {
	ID               string     `json:"id"`
	OrderNumber      string     `json:"order_number"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	DeviceType       string     `json:"device_type"`
	DeviceBrand      *string    `json:"device_brand"`
	DeviceModel      *string    `json:"device_model"`
	IssueDescription string     `json:"issue_description"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	EstimatedCost    *float64   `json:"estimated_cost"`
	FinalCost        *float64   `json:"final_cost"`
	AssignedTo       *string    `json:"assigned_to"`
	ReceivedDate     time.Time  `json:"received_date"`
	CompletedDate    *time.Time `json:"completed_date"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Resolved from the technicians table on read; also captured into
	// snapshots so the change log can name technicians after reassignment
	// or deletion.
	TechnicianName *string `json:"technician_name"`
}

// Snapshot captures the order's full field-value state for the change log,
// including the resolved technician name alongside the assigned_to id.
func (o *ServiceOrder) Snapshot() Snapshot {
	s := Snapshot{
		"order_number":      String(o.OrderNumber),
		"customer_name":     String(o.CustomerName),
		"customer_phone":    String(o.CustomerPhone),
		"device_type":       String(o.DeviceType),
		"device_brand":      optString(o.DeviceBrand),
		"device_model":      optString(o.DeviceModel),
		"issue_description": String(o.IssueDescription),
		"status":            String(o.Status),
		"priority":          String(o.Priority),
		"estimated_cost":    optNumber(o.EstimatedCost),
		"final_cost":        optNumber(o.FinalCost),
		"assigned_to":       optString(o.AssignedTo),
		"technician_name":   optString(o.TechnicianName),
	}
	if o.CompletedDate != nil {
		s["completed_date"] = String(FormatDate(*o.CompletedDate))
	} else {
		s["completed_date"] = Null()
	}
	return s
}

// OrderForm represents the payload for creating a service order
type OrderForm struct {
	CustomerName     string   `json:"customer_name"`
	CustomerPhone    string   `json:"customer_phone"`
	DeviceType       string   `json:"device_type"`
	DeviceBrand      *string  `json:"device_brand"`
	DeviceModel      *string  `json:"device_model"`
	IssueDescription string   `json:"issue_description"`
	Status           string   `json:"status"`
	Priority         string   `json:"priority"`
	EstimatedCost    *float64 `json:"estimated_cost"`
	AssignedTo       *string  `json:"assigned_to"`
}

// Validate validates the create-order payload
func (f *OrderForm) Validate() []string {
	var errors []string

	if f.CustomerName == "" {
		errors = append(errors, "Customer name is required")
	}
	if f.CustomerPhone == "" {
		errors = append(errors, "Customer phone is required")
	}
	if f.DeviceType == "" {
		errors = append(errors, "Device type is required")
	}
	if f.IssueDescription == "" {
		errors = append(errors, "Issue description is required")
	}

	return errors
}

// OrderUpdateForm represents a partial update: only non-nil fields
// overwrite the stored order, mirroring the COALESCE update semantics.
type OrderUpdateForm struct {
	CustomerName     *string  `json:"customer_name"`
	CustomerPhone    *string  `json:"customer_phone"`
	DeviceType       *string  `json:"device_type"`
	DeviceBrand      *string  `json:"device_brand"`
	DeviceModel      *string  `json:"device_model"`
	IssueDescription *string  `json:"issue_description"`
	Status           *string  `json:"status"`
	Priority         *string  `json:"priority"`
	EstimatedCost    *float64 `json:"estimated_cost"`
	FinalCost        *float64 `json:"final_cost"`
	AssignedTo       *string  `json:"assigned_to"`
	CompletedDate    *string  `json:"completed_date"`
}

// Apply overlays the provided fields onto an existing order
func (f *OrderUpdateForm) Apply(o *ServiceOrder) error {
	if f.CustomerName != nil {
		o.CustomerName = *f.CustomerName
	}
	if f.CustomerPhone != nil {
		o.CustomerPhone = *f.CustomerPhone
	}
	if f.DeviceType != nil {
		o.DeviceType = *f.DeviceType
	}
	if f.DeviceBrand != nil {
		o.DeviceBrand = f.DeviceBrand
	}
	if f.DeviceModel != nil {
		o.DeviceModel = f.DeviceModel
	}
	if f.IssueDescription != nil {
		o.IssueDescription = *f.IssueDescription
	}
	if f.Status != nil {
		o.Status = *f.Status
	}
	if f.Priority != nil {
		o.Priority = *f.Priority
	}
	if f.EstimatedCost != nil {
		o.EstimatedCost = f.EstimatedCost
	}
	if f.FinalCost != nil {
		o.FinalCost = f.FinalCost
	}
	if f.AssignedTo != nil {
		o.AssignedTo = f.AssignedTo
	}
	if f.CompletedDate != nil {
		date, err := ParseDate(*f.CompletedDate)
		if err != nil {
			return err
		}
		o.CompletedDate = &date
	}
	return nil
}

func optString(s *string) FieldValue {
	if s == nil {
		return Null()
	}
	return String(*s)
}

func optNumber(n *float64) FieldValue {
	if n == nil {
		return Null()
	}
	return Number(*n)
}
