package models

import "time"

// DB models

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodPix        PaymentMethod = "pix"
)

type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "scheduled"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

type Car struct {
	Id           int       `json:"id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"license_plate"`
	DailyRate    float64   `json:"daily_rate"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
}

type Customer struct {
	Id                int       `json:"id"`
	Name              string    `json:"name"`
	CPF               string    `json:"cpf"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	HasPendingPayment bool      `json:"has_pending_payment"`
	CreatedAt         time.Time `json:"created_at"`
}

type Rental struct {
	Id         int          `json:"id"`
	CustomerId int          `json:"customer_id"`
	CarId      int          `json:"car_id"`
	StartDate  time.Time    `json:"start_date"`
	EndDate    time.Time    `json:"end_date"`
	TotalValue float64      `json:"total_value"`
	Status     RentalStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}

type Payment struct {
	Id            int           `json:"id"`
	RentalId      int           `json:"rental_id"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentDate   time.Time     `json:"payment_date"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

type Maintenance struct {
	Id              int               `json:"id"`
	CarId           int               `json:"car_id"`
	Description     string            `json:"description"`
	MaintenanceDate time.Time         `json:"maintenance_date"`
	Cost            float64           `json:"cost"`
	Status          MaintenanceStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
}

// request models
//
// Create requests carry required fields; update requests are patches where
// every field is optional and only present fields are applied.

type CreateCarRequest struct {
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"license_plate"`
	DailyRate    float64 `json:"daily_rate"`
	IsAvailable  *bool   `json:"is_available"`
}

type UpdateCarRequest struct {
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	LicensePlate *string  `json:"license_plate"`
	DailyRate    *float64 `json:"daily_rate"`
	IsAvailable  *bool    `json:"is_available"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	CPF   *string `json:"cpf"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type CreateRentalRequest struct {
	CustomerId int    `json:"customer_id"`
	CarId      int    `json:"car_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type UpdateRentalRequest struct {
	StartDate *string       `json:"start_date"`
	EndDate   *string       `json:"end_date"`
	Status    *RentalStatus `json:"status"`
}

type CreatePaymentRequest struct {
	RentalId      int            `json:"rental_id"`
	Amount        float64        `json:"amount"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	PaymentDate   *string        `json:"payment_date"`
	Status        *PaymentStatus `json:"status"`
}

type UpdatePaymentRequest struct {
	Amount        *float64       `json:"amount"`
	PaymentMethod *PaymentMethod `json:"payment_method"`
	PaymentDate   *string        `json:"payment_date"`
	Status        *PaymentStatus `json:"status"`
}

type CreateMaintenanceRequest struct {
	CarId           int                `json:"car_id"`
	Description     string             `json:"description"`
	MaintenanceDate *string            `json:"maintenance_date"`
	Cost            float64            `json:"cost"`
	Status          *MaintenanceStatus `json:"status"`
}

type UpdateMaintenanceRequest struct {
	Description     *string            `json:"description"`
	MaintenanceDate *string            `json:"maintenance_date"`
	Cost            *float64           `json:"cost"`
	Status          *MaintenanceStatus `json:"status"`
}

// search filters

type AvailableCarFilter struct {
	Brand    string
	Model    string
	MaxPrice *float64
	MinYear  *int
	MaxYear  *int
}

type RentalFilter struct {
	CustomerId *int
	Status     RentalStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
