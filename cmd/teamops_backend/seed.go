package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/teamops_backend/internal/adapters/database/pgsql"
	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/teamops_backend/internal/core/ports/repositories"
	"github.com/SscSPs/teamops_backend/internal/utils"
	"github.com/SscSPs/teamops_backend/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo users, a project and KPIs. Safe to run repeatedly.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, true)
		if err != nil {
			return err
		}
		defer database.ClosePgxPool(dbPool)

		s := &seeder{repos: pgsql.NewRepositoryProvider(dbPool), hasher: utils.NewBcryptHasher(cfg.BcryptCost), now: time.Now().UTC()}
		return s.run(cmd.Context())
	},
}

type seeder struct {
	repos  portsrepo.RepositoryProvider
	hasher *utils.BcryptHasher
	now    time.Time
}

type seedUser struct {
	email, password, firstName, lastName string
	role                                 domain.UserRole
}

type seedKpi struct {
	name, description, unit string
	kpiType                 domain.KpiType
	target                  string
	onProject               bool
	values                  []seedValue
}

type seedValue struct {
	value, date, notes string
	byEmployee         bool
}

func (s *seeder) run(ctx context.Context) error {
	admin, err := s.user(ctx, seedUser{"admin@teamops.com", "Admin123!", "Admin", "User", domain.RoleAdmin})
	if err != nil {
		return err
	}
	manager, err := s.user(ctx, seedUser{"manager@teamops.com", "Manager123!", "John", "Manager", domain.RoleManager})
	if err != nil {
		return err
	}
	employee, err := s.user(ctx, seedUser{"employee@teamops.com", "Employee123!", "Jane", "Employee", domain.RoleEmployee})
	if err != nil {
		return err
	}

	projectID, err := s.project(ctx, admin, manager, employee)
	if err != nil {
		return err
	}

	kpis := []seedKpi{
		{
			name: "Project Completion", description: "Percentage of project tasks completed", unit: "%",
			kpiType: domain.KpiPercentage, target: "100", onProject: true,
			values: []seedValue{
				{value: "65", date: "2024-03-15", notes: "Q1 progress update"},
				{value: "75", date: "2024-04-01", notes: "Sprint review"},
			},
		},
		{
			name: "Budget Utilization", description: "Share of the project budget spent", unit: "%",
			kpiType: domain.KpiPercentage, target: "80", onProject: true,
			values: []seedValue{{value: "45", date: "2024-03-15", notes: "Mid-quarter budget review"}},
		},
		{
			name: "Team Satisfaction", description: "Average team satisfaction score", unit: "score",
			kpiType: domain.KpiNumeric, target: "4.5",
			values: []seedValue{{value: "4.2", date: "2024-04-01", notes: "Monthly survey", byEmployee: true}},
		},
	}
	for _, k := range kpis {
		if err := s.kpi(ctx, k, projectID, manager, employee); err != nil {
			return err
		}
	}

	logger.Info("Seed completed")
	return nil
}

func (s *seeder) user(ctx context.Context, u seedUser) (string, error) {
	existing, err := s.repos.UserRepo.FindUserByEmail(ctx, u.email)
	if err == nil {
		logger.Info("User already present", slog.String("email", u.email))
		return existing.UserID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	hash, err := s.hasher.Hash(u.password)
	if err != nil {
		return "", err
	}
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        domain.NormalizeEmail(u.email),
		PasswordHash: hash,
		FirstName:    u.firstName,
		LastName:     u.lastName,
		Role:         u.role,
		IsActive:     true,
		Timestamps:   domain.Timestamps{CreatedAt: s.now, UpdatedAt: s.now},
	}
	if err := s.repos.UserRepo.SaveUser(ctx, user); err != nil {
		return "", fmt.Errorf("failed to seed user %s: %w", u.email, err)
	}
	logger.Info("User seeded", slog.String("email", u.email), slog.String("role", string(u.role)))
	return user.UserID, nil
}

func (s *seeder) project(ctx context.Context, adminID, managerID, employeeID string) (string, error) {
	const name = "Website Redesign"
	found, err := s.repos.ProjectRepo.FindProjects(ctx, domain.ProjectFilter{Search: name, Visibility: domain.ProjectVisibility{All: true}})
	if err != nil {
		return "", err
	}
	for _, p := range found {
		if p.Name == name {
			logger.Info("Project already present", slog.String("name", name))
			return p.ProjectID, nil
		}
	}

	start, end := day("2024-01-15"), day("2024-06-30")
	description := "Complete redesign of company website"
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        name,
		Description: &description,
		Status:      domain.ProjectInProgress,
		StartDate:   &start,
		EndDate:     &end,
		Budget:      decimal.NewNullDecimal(decimal.NewFromInt(50000)),
		ManagerID:   managerID,
		CreatorID:   adminID,
		Timestamps:  domain.Timestamps{CreatedAt: s.now, UpdatedAt: s.now},
	}
	if err := s.repos.ProjectRepo.SaveProject(ctx, project); err != nil {
		return "", fmt.Errorf("failed to seed project: %w", err)
	}

	role := "Frontend Developer"
	err = s.repos.ProjectRepo.SaveMembership(ctx, domain.EmployeeProject{
		UserID:    employeeID,
		ProjectID: project.ProjectID,
		Role:      &role,
		StartDate: start,
		CreatedAt: s.now,
	})
	if err != nil && !errors.Is(err, apperrors.ErrConflict) {
		return "", fmt.Errorf("failed to seed assignment: %w", err)
	}
	logger.Info("Project seeded", slog.String("name", name))
	return project.ProjectID, nil
}

func (s *seeder) kpi(ctx context.Context, k seedKpi, projectID, managerID, employeeID string) error {
	found, err := s.repos.KpiRepo.FindKpis(ctx, domain.KpiFilter{Search: k.name, Visibility: domain.KpiVisibility{All: true}})
	if err != nil {
		return err
	}
	for _, existing := range found {
		if existing.Name == k.name {
			logger.Info("KPI already present", slog.String("name", k.name))
			return nil
		}
	}

	kpi := domain.Kpi{
		KpiID:       uuid.NewString(),
		Name:        k.name,
		Description: &k.description,
		Type:        k.kpiType,
		Target:      decimal.NewNullDecimal(decimal.RequireFromString(k.target)),
		Unit:        &k.unit,
		IsActive:    true,
		CreatorID:   managerID,
		Timestamps:  domain.Timestamps{CreatedAt: s.now, UpdatedAt: s.now},
	}
	if k.onProject {
		kpi.ProjectID = &projectID
	}
	if err := s.repos.KpiRepo.SaveKpi(ctx, kpi); err != nil {
		return fmt.Errorf("failed to seed KPI %s: %w", k.name, err)
	}

	for _, v := range k.values {
		recorder := managerID
		if v.byEmployee {
			recorder = employeeID
		}
		notes := v.notes
		value := domain.KpiValue{
			ValueID:    uuid.NewString(),
			KpiID:      kpi.KpiID,
			UserID:     recorder,
			Value:      decimal.RequireFromString(v.value),
			Date:       day(v.date),
			Notes:      &notes,
			Timestamps: domain.Timestamps{CreatedAt: s.now, UpdatedAt: s.now},
		}
		if err := s.repos.KpiRepo.SaveKpiValue(ctx, value); err != nil {
			return fmt.Errorf("failed to seed value for %s: %w", k.name, err)
		}
	}
	logger.Info("KPI seeded", slog.String("name", k.name), slog.Int("values", len(k.values)))
	return nil
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}
