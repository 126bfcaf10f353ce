package service

import (
	"sensor_station/internal/models"
	"sensor_station/internal/wifi"
)

// NetworkService reports the outcome of the startup bring-up. Both values
// settle before the server accepts requests, so reads need no locking.
type NetworkService struct {
	state wifi.BringupState
	link  models.LinkInfo
}

func NewNetworkService(state wifi.BringupState, link models.LinkInfo) *NetworkService {
	return &NetworkService{state: state, link: link}
}

// Status returns the bring-up state name and the link facts.
func (s *NetworkService) Status() (string, models.LinkInfo) {
	return s.state.String(), s.link
}
