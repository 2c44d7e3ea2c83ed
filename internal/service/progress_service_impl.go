package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/grade"
	"github.com/alexanderramin/etude/internal/recommend"
)

// progressService derives grade completion and the next focus from a
// user's store. Nothing is cached; every call recomputes from current state.
type progressService struct {
	stores     *StoreRegistry
	curriculum *grade.Curriculum
	engine     *recommend.Engine
}

func NewProgressService(stores *StoreRegistry, curriculum *grade.Curriculum) ProgressService {
	return &progressService{
		stores:     stores,
		curriculum: curriculum,
		engine:     recommend.NewEngine(curriculum),
	}
}

func (s *progressService) Grades(ctx context.Context, userID string) (*contract.GradesResponse, error) {
	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := s.curriculum.Report(store)
	return &contract.GradesResponse{Grades: report, Standing: grade.StandingOf(report)}, nil
}

func (s *progressService) Grade(ctx context.Context, userID string, level int) (*grade.Completion, error) {
	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, err := s.curriculum.Completion(level, store)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *progressService) Standing(ctx context.Context, userID string) (grade.Standing, error) {
	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return grade.Standing{}, err
	}
	return s.curriculum.Standing(store), nil
}

func (s *progressService) Focus(ctx context.Context, userID string, req contract.FocusRequest) (*contract.FocusResponse, error) {
	if req.Family != "" && !req.Family.Valid() {
		return nil, fmt.Errorf("%w: family %q", domain.ErrInvalidDomainValue, req.Family)
	}
	store, err := s.stores.For(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &contract.FocusResponse{Standing: s.curriculum.Standing(store)}
	if req.Family == "" {
		resp.Focus = s.engine.Suggest(store)
	} else {
		resp.Focus = s.engine.SuggestIn(store, req.Family)
	}
	return resp, nil
}
