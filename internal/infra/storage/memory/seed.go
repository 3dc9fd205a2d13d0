package memory

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

// Seed is the catalog loaded into the memory driver
type Seed struct {
	Turfs     []SeedTurf     `toml:"turfs"`
	Customers []SeedCustomer `toml:"customers"`
}

// SeedTurf describes one turf and its courts
type SeedTurf struct {
	ID                  int64            `toml:"id"`
	Name                string           `toml:"name"`
	Address             string           `toml:"address"`
	Area                string           `toml:"area"`
	OpenTime            types.TimeString `toml:"open_time"`
	CloseTime           types.TimeString `toml:"close_time"`
	SlotDurationMinutes int              `toml:"slot_duration_minutes"`
	Games               []string         `toml:"games"`
	Status              string           `toml:"status"`
	Courts              []SeedCourt      `toml:"courts"`
}

// SeedCourt describes one court
type SeedCourt struct {
	ID       int64  `toml:"id"`
	Name     string `toml:"name"`
	Position int    `toml:"position"`
}

// SeedCustomer describes one customer
type SeedCustomer struct {
	ID           int64  `toml:"id"`
	Name         string `toml:"name"`
	MobileNumber string `toml:"mobile_number"`
	Area         string `toml:"area"`
}

// LoadSeed reads a seed file
func LoadSeed(path string) (*Seed, error) {
	var seed Seed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidSeed, path, err)
	}
	return &seed, nil
}

// Apply validates the seed and puts its turfs and customers into the store
func (s *Store) Apply(seed *Seed) error {
	turfs := make([]*domain.Turf, 0, len(seed.Turfs))
	for _, st := range seed.Turfs {
		turf, err := st.toDomain()
		if err != nil {
			return err
		}
		turfs = append(turfs, turf)
	}

	for _, turf := range turfs {
		s.PutTurf(turf)
	}
	for _, sc := range seed.Customers {
		s.PutCustomer(&domain.Customer{
			ID:           sc.ID,
			Name:         sc.Name,
			MobileNumber: sc.MobileNumber,
			Area:         sc.Area,
		})
	}

	return nil
}

func (st SeedTurf) toDomain() (*domain.Turf, error) {
	open, err := types.NewTimeStringFromString(st.OpenTime.String())
	if err != nil {
		return nil, fmt.Errorf("%w: turf %d open_time: %v", ErrInvalidSeed, st.ID, err)
	}
	closeTime, err := types.NewTimeStringFromString(st.CloseTime.String())
	if err != nil {
		return nil, fmt.Errorf("%w: turf %d close_time: %v", ErrInvalidSeed, st.ID, err)
	}
	if !open.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: turf %d: open_time must be before close_time", ErrInvalidSeed, st.ID)
	}
	if st.SlotDurationMinutes < domain.MinSlotDurationMinutes || st.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: turf %d: slot_duration_minutes out of range", ErrInvalidSeed, st.ID)
	}

	status := domain.TurfStatusActive
	if st.Status != "" {
		status = domain.TurfStatus(st.Status)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: turf %d: unknown status %q", ErrInvalidSeed, st.ID, st.Status)
	}

	courts := make([]domain.Court, 0, len(st.Courts))
	for _, c := range st.Courts {
		courts = append(courts, domain.Court{ID: c.ID, TurfID: st.ID, Name: c.Name, Position: c.Position})
	}

	return &domain.Turf{
		ID:                  st.ID,
		Name:                st.Name,
		Address:             st.Address,
		Area:                st.Area,
		OpenTime:            open,
		CloseTime:           closeTime,
		SlotDurationMinutes: st.SlotDurationMinutes,
		Games:               st.Games,
		Status:              status,
		Courts:              courts,
	}, nil
}
