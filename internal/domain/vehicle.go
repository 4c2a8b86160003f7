package domain

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "Available"
	VehicleStatusSold      VehicleStatus = "Sold"
)

func (s VehicleStatus) IsAvailable() bool {
	return s == VehicleStatusAvailable
}
