package service

import (
	"fmt"
	"strings"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/store"
)

// ProfileInput carries optional changes; nil fields are left as they are.
type ProfileInput struct {
	Name           *string
	Age            *int
	Height         *float64
	Weight         *float64
	TargetCalories *float64
}

func UpdateProfile(s *store.Store, in ProfileInput) (model.UserProfile, error) {
	p := s.Profile()
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.UserProfile{}, fmt.Errorf("name is required")
		}
		p.Name = name
	}
	if in.Age != nil {
		if err := validateNonNegativeInt("age", *in.Age); err != nil {
			return model.UserProfile{}, err
		}
		p.Age = *in.Age
	}
	if in.Height != nil {
		if err := validatePositiveFloat("height", *in.Height); err != nil {
			return model.UserProfile{}, err
		}
		p.Height = *in.Height
	}
	if in.Weight != nil {
		if err := validatePositiveFloat("weight", *in.Weight); err != nil {
			return model.UserProfile{}, err
		}
		p.CurrentWeight = *in.Weight
	}
	if in.TargetCalories != nil {
		if err := validatePositiveFloat("target calories", *in.TargetCalories); err != nil {
			return model.UserProfile{}, err
		}
		p.TargetCalories = *in.TargetCalories
	}
	if err := s.SetProfile(p); err != nil {
		return model.UserProfile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}
