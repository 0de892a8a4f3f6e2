package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mediscribe/internal/domain"
	"mediscribe/internal/service"
	"mediscribe/mocks"
)

func TestVisitService_Create(t *testing.T) {
	patientID := uuid.New()
	visitRepo := new(mocks.MockVisitRepo)
	patientRepo := new(mocks.MockPatientRepo)
	patientRepo.On("GetByID", mock.Anything, patientID).Return(&domain.Patient{ID: patientID, Name: "Jane Roe"}, nil)
	visitRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Visit")).Return(nil)

	svc := service.NewVisitService(visitRepo, patientRepo)
	visit, err := svc.Create(context.Background(), &service.CreateVisitInput{
		PatientID: patientID,
		VisitDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		VisitType: "consultation",
	})

	require.NoError(t, err)
	assert.Equal(t, patientID, visit.PatientID)
	assert.Equal(t, domain.VisitStatusPending, visit.Status)
	visitRepo.AssertExpectations(t)
}

func TestVisitService_Create_DefaultsVisitDate(t *testing.T) {
	patientID := uuid.New()
	visitRepo := new(mocks.MockVisitRepo)
	patientRepo := new(mocks.MockPatientRepo)
	patientRepo.On("GetByID", mock.Anything, patientID).Return(&domain.Patient{ID: patientID}, nil)
	visitRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := service.NewVisitService(visitRepo, patientRepo)
	visit, err := svc.Create(context.Background(), &service.CreateVisitInput{PatientID: patientID})

	require.NoError(t, err)
	assert.False(t, visit.VisitDate.IsZero())
}

func TestVisitService_Create_PatientNotFound(t *testing.T) {
	patientID := uuid.New()
	visitRepo := new(mocks.MockVisitRepo)
	patientRepo := new(mocks.MockPatientRepo)
	patientRepo.On("GetByID", mock.Anything, patientID).Return(nil, domain.ErrPatientNotFound)

	svc := service.NewVisitService(visitRepo, patientRepo)
	visit, err := svc.Create(context.Background(), &service.CreateVisitInput{PatientID: patientID})

	assert.Nil(t, visit)
	assert.ErrorIs(t, err, domain.ErrPatientNotFound)
	visitRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
