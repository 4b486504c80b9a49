package dto

import "github.com/shopspring/decimal"

type PatientStats struct {
	UpcomingAppointments int64 `json:"upcoming_appointments"`
	TotalAppointments    int64 `json:"total_appointments"`
	MedicalRecords       int64 `json:"medical_records"`
	UnreadNotifications  int64 `json:"unread_notifications"`
}

type ProfessionalStats struct {
	TodayAppointments   int64   `json:"today_appointments"`
	PendingAppointments int64   `json:"pending_appointments"`
	TotalPatients       int64   `json:"total_patients"`
	AverageRating       float64 `json:"average_rating"`
	ReviewCount         int64   `json:"review_count"`
}

type AdminStats struct {
	UsersByRole          map[string]int64 `json:"users_by_role"`
	AppointmentsByStatus map[string]int64 `json:"appointments_by_status"`
	OpenSupportTickets   int64            `json:"open_support_tickets"`
	LowStockSupplies     int              `json:"low_stock_supplies"`
	MonthIncome          decimal.Decimal  `json:"month_income"`
	MonthExpense         decimal.Decimal  `json:"month_expense"`
}

type DashboardStatsResponse struct {
	Role         string             `json:"role"`
	Patient      *PatientStats      `json:"patient,omitempty"`
	Professional *ProfessionalStats `json:"professional,omitempty"`
	Admin        *AdminStats        `json:"admin,omitempty"`
}
