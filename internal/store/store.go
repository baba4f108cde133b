package store

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
)

const (
	KeyMeals     = "nutriai_meals"
	KeyExercises = "nutriai_exercises"
	KeyWeights   = "nutriai_weights"
	KeyProfile   = "nutriai_profile"
)

// Documents persists whole JSON documents by key. PutMany must write all
// documents or none.
type Documents interface {
	Get(key string) ([]byte, bool, error)
	PutMany(docs map[string][]byte) error
}

// Fallback records a document that could not be decoded at load time and was
// replaced by its empty value.
type Fallback struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

type Snapshot struct {
	Meals      []model.MealItem     `json:"meals"`
	Exercises  []model.ExerciseItem `json:"exercises"`
	WeightLogs []model.WeightLog    `json:"weightLogs"`
	Profile    model.UserProfile    `json:"profile"`
}

// Patch replaces each non-nil collection.
type Patch struct {
	Meals      *[]model.MealItem
	Exercises  *[]model.ExerciseItem
	WeightLogs *[]model.WeightLog
	Profile    *model.UserProfile
}

func (p Patch) Empty() bool {
	return p.Meals == nil && p.Exercises == nil && p.WeightLogs == nil && p.Profile == nil
}

// Store is the in-memory view of the four persisted documents. It is not
// safe for concurrent use.
type Store struct {
	docs      Documents
	meals     []model.MealItem
	exercises []model.ExerciseItem
	weights   []model.WeightLog
	profile   model.UserProfile
	fallbacks []Fallback
}

func Load(docs Documents) (*Store, error) {
	s := &Store{
		docs:      docs,
		meals:     []model.MealItem{},
		exercises: []model.ExerciseItem{},
		weights:   []model.WeightLog{},
		profile:   model.DefaultProfile(),
	}

	var err error
	err = multierr.Append(err, s.loadDoc(KeyMeals, &s.meals))
	err = multierr.Append(err, s.loadDoc(KeyExercises, &s.exercises))
	err = multierr.Append(err, s.loadDoc(KeyWeights, &s.weights))
	err = multierr.Append(err, s.loadDoc(KeyProfile, &s.profile))
	if err != nil {
		return nil, err
	}
	if s.meals == nil {
		s.meals = []model.MealItem{}
	}
	if s.exercises == nil {
		s.exercises = []model.ExerciseItem{}
	}
	if s.weights == nil {
		s.weights = []model.WeightLog{}
	}
	return s, nil
}

func (s *Store) loadDoc(key string, dst any) error {
	raw, ok, err := s.docs.Get(key)
	if err != nil {
		return fmt.Errorf("read document %s: %w", key, err)
	}
	if !ok {
		logrus.WithField("key", key).Debug("document missing, using default")
		return nil
	}

	// decode into a scratch value so a bad document keeps the default
	switch v := dst.(type) {
	case *[]model.MealItem:
		var items []model.MealItem
		if err := json.Unmarshal(raw, &items); err != nil {
			s.fallback(key, err)
			return nil
		}
		*v = items
	case *[]model.ExerciseItem:
		var items []model.ExerciseItem
		if err := json.Unmarshal(raw, &items); err != nil {
			s.fallback(key, err)
			return nil
		}
		*v = items
	case *[]model.WeightLog:
		var items []model.WeightLog
		if err := json.Unmarshal(raw, &items); err != nil {
			s.fallback(key, err)
			return nil
		}
		*v = items
	case *model.UserProfile:
		p := model.DefaultProfile()
		if err := json.Unmarshal(raw, &p); err != nil {
			s.fallback(key, err)
			return nil
		}
		*v = p
	default:
		return fmt.Errorf("unsupported document type %T", dst)
	}
	return nil
}

func (s *Store) fallback(key string, err error) {
	logrus.WithError(err).WithField("key", key).Warn("malformed document, using default")
	s.fallbacks = append(s.fallbacks, Fallback{Key: key, Reason: err.Error()})
}

func (s *Store) Fallbacks() []Fallback {
	return append([]Fallback(nil), s.fallbacks...)
}

func (s *Store) Meals() []model.MealItem {
	return append([]model.MealItem{}, s.meals...)
}

func (s *Store) Exercises() []model.ExerciseItem {
	return append([]model.ExerciseItem{}, s.exercises...)
}

func (s *Store) WeightLogs() []model.WeightLog {
	return append([]model.WeightLog{}, s.weights...)
}

func (s *Store) Profile() model.UserProfile {
	return s.profile
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Meals:      s.Meals(),
		Exercises:  s.Exercises(),
		WeightLogs: s.WeightLogs(),
		Profile:    s.Profile(),
	}
}

func (s *Store) AppendMeals(items ...model.MealItem) error {
	if len(items) == 0 {
		return nil
	}
	next := append(s.Meals(), items...)
	return s.Replace(Patch{Meals: &next})
}

func (s *Store) AppendExercises(items ...model.ExerciseItem) error {
	if len(items) == 0 {
		return nil
	}
	next := append(s.Exercises(), items...)
	return s.Replace(Patch{Exercises: &next})
}

// SetWeightState writes the weight logs and the profile in one step.
func (s *Store) SetWeightState(logs []model.WeightLog, profile model.UserProfile) error {
	return s.Replace(Patch{WeightLogs: &logs, Profile: &profile})
}

func (s *Store) SetProfile(profile model.UserProfile) error {
	return s.Replace(Patch{Profile: &profile})
}

// Replace persists every collection named in p atomically. Memory is only
// updated once the write succeeded.
func (s *Store) Replace(p Patch) error {
	if p.Empty() {
		return nil
	}
	docs := map[string][]byte{}
	var (
		meals     []model.MealItem
		exercises []model.ExerciseItem
		weights   []model.WeightLog
	)
	if p.Meals != nil {
		meals = append([]model.MealItem{}, (*p.Meals)...)
		if err := encodeInto(docs, KeyMeals, meals); err != nil {
			return err
		}
	}
	if p.Exercises != nil {
		exercises = append([]model.ExerciseItem{}, (*p.Exercises)...)
		if err := encodeInto(docs, KeyExercises, exercises); err != nil {
			return err
		}
	}
	if p.WeightLogs != nil {
		weights = append([]model.WeightLog{}, (*p.WeightLogs)...)
		if err := encodeInto(docs, KeyWeights, weights); err != nil {
			return err
		}
	}
	if p.Profile != nil {
		if err := encodeInto(docs, KeyProfile, *p.Profile); err != nil {
			return err
		}
	}

	if err := s.docs.PutMany(docs); err != nil {
		return fmt.Errorf("persist documents: %w", err)
	}

	if p.Meals != nil {
		s.meals = meals
	}
	if p.Exercises != nil {
		s.exercises = exercises
	}
	if p.WeightLogs != nil {
		s.weights = weights
	}
	if p.Profile != nil {
		s.profile = *p.Profile
	}
	return nil
}

func encodeInto(docs map[string][]byte, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", key, err)
	}
	docs[key] = raw
	return nil
}
