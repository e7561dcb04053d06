package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/building"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/spottype"
)

// BuildingRepository здания в памяти
type BuildingRepository struct {
	store *Store
}

func (r *BuildingRepository) Create(_ context.Context, b *domain.Building) (*domain.Building, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.buildings {
		if existing.Code == b.Code {
			return nil, building.ErrDuplicateCode
		}
	}

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = s.now()

	c := *b
	s.buildings[b.ID] = &c
	return b, nil
}

func (r *BuildingRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Building, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buildings[id]
	if !ok {
		return nil, building.ErrBuildingNotFound
	}
	c := *b
	return &c, nil
}

func (r *BuildingRepository) List(_ context.Context, onlyActive bool) ([]*domain.Building, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Building, 0, len(s.buildings))
	for _, b := range s.buildings {
		if onlyActive && !b.IsActive {
			continue
		}
		c := *b
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (r *BuildingRepository) Update(_ context.Context, b *domain.Building) (*domain.Building, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.buildings[b.ID]
	if !ok {
		return nil, building.ErrBuildingNotFound
	}

	existing.Name = b.Name
	existing.Location = b.Location
	existing.IsActive = b.IsActive

	c := *existing
	return &c, nil
}

// SpotTypeRepository справочник типов мест в памяти
type SpotTypeRepository struct {
	store *Store
}

func (r *SpotTypeRepository) Create(_ context.Context, st *domain.SpotType) (*domain.SpotType, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.spotTypes {
		if existing.Name == st.Name {
			return nil, spottype.ErrDuplicateName
		}
	}

	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	st.CreatedAt = s.now()

	c := *st
	s.spotTypes[st.ID] = &c
	return st, nil
}

func (r *SpotTypeRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.SpotType, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.spotTypes[id]
	if !ok {
		return nil, spottype.ErrSpotTypeNotFound
	}
	c := *st
	return &c, nil
}

func (r *SpotTypeRepository) List(_ context.Context) ([]*domain.SpotType, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.SpotType, 0, len(s.spotTypes))
	for _, st := range s.spotTypes {
		c := *st
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// SpotRepository парковочные места в памяти
type SpotRepository struct {
	store *Store
}

func (r *SpotRepository) Create(_ context.Context, sp *domain.Spot) (*domain.Spot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkSpotLocked(sp.BuildingID, sp.SpotTypeID, sp.SpotNumber); err != nil {
		return nil, err
	}

	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	sp.CreatedAt = s.now()

	c := *sp
	s.spots[sp.ID] = &c
	return sp, nil
}

// CreateBatch создает count мест подряд начиная с номера from; либо все, либо ни одного
func (r *SpotRepository) CreateBatch(_ context.Context, buildingID, spotTypeID uuid.UUID, from, count int) ([]*domain.Spot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < count; i++ {
		if err := s.checkSpotLocked(buildingID, spotTypeID, from+i); err != nil {
			return nil, err
		}
	}

	created := s.now()
	result := make([]*domain.Spot, 0, count)
	for i := 0; i < count; i++ {
		sp := &domain.Spot{
			ID:         uuid.New(),
			BuildingID: buildingID,
			SpotNumber: from + i,
			SpotTypeID: spotTypeID,
			IsActive:   true,
			CreatedAt:  created,
		}
		c := *sp
		s.spots[sp.ID] = &c
		result = append(result, sp)
	}

	return result, nil
}

func (r *SpotRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Spot, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.spots[id]
	if !ok {
		return nil, spot.ErrSpotNotFound
	}
	c := *sp
	return &c, nil
}

func (r *SpotRepository) List(_ context.Context, filter domain.SpotsFilter) ([]*domain.Spot, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Spot, 0)
	for _, sp := range s.spots {
		if !filter.Matches(sp) {
			continue
		}
		c := *sp
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].BuildingID != result[j].BuildingID {
			return result[i].BuildingID.String() < result[j].BuildingID.String()
		}
		return result[i].SpotNumber < result[j].SpotNumber
	})
	return result, nil
}

func (r *SpotRepository) MaxSpotNumber(_ context.Context, buildingID uuid.UUID) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxNumber := 0
	for _, sp := range s.spots {
		if sp.BuildingID == buildingID && sp.SpotNumber > maxNumber {
			maxNumber = sp.SpotNumber
		}
	}
	return maxNumber, nil
}

func (r *SpotRepository) SetActive(_ context.Context, id uuid.UUID, active bool) (*domain.Spot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.spots[id]
	if !ok {
		return nil, spot.ErrSpotNotFound
	}
	sp.IsActive = active

	c := *sp
	return &c, nil
}

// checkSpotLocked проверяет внешние ключи и уникальность номера; вызывается под s.mu
func (s *Store) checkSpotLocked(buildingID, spotTypeID uuid.UUID, number int) error {
	if _, ok := s.buildings[buildingID]; !ok {
		return spot.ErrInvalidReference
	}
	if _, ok := s.spotTypes[spotTypeID]; !ok {
		return spot.ErrInvalidReference
	}
	for _, existing := range s.spots {
		if existing.BuildingID == buildingID && existing.SpotNumber == number {
			return spot.ErrDuplicateNumber
		}
	}
	return nil
}
