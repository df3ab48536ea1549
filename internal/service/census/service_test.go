package census

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/ward-api/internal/model"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
	"github.com/jwalitptl/ward-api/pkg/logger"
	"github.com/jwalitptl/ward-api/pkg/metrics"
)

type fakeStore struct {
	snap *model.Snapshot
	err  error
}

func (f *fakeStore) ListWithAdmissions(context.Context) ([]*model.Patient, error) {
	return f.snap.Patients, f.err
}

func (f *fakeStore) Get(_ context.Context, id int64) (*model.Patient, error) {
	for _, p := range f.snap.Patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("patient", nil)
}

func (f *fakeStore) GetByMRN(_ context.Context, mrn string) (*model.Patient, error) {
	for _, p := range f.snap.Patients {
		if p.MRN == mrn {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("patient", nil)
}

type consultationList []*model.Consultation

func (c consultationList) List(context.Context) ([]*model.Consultation, error) { return c, nil }

type appointmentList []*model.Appointment

func (a appointmentList) List(context.Context) ([]*model.Appointment, error) { return a, nil }

func newService(store *fakeStore) *Service {
	return NewService(
		store,
		consultationList(store.snap.Consultations),
		appointmentList(store.snap.Appointments),
		newAggregator(),
		metrics.New("test"),
		logger.NewNop(),
	)
}

func TestServiceCensus(t *testing.T) {
	svc := newService(&fakeStore{snap: fixture()})

	r, err := svc.Census(context.Background(), model.CensusFilter{Specialty: "Pulmonology"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Count)
	assert.Equal(t, 1, r.PendingConsultations)
	assert.Equal(t, now, r.EvaluatedAt)
}

func TestServiceLongStayListsOnlyLongStays(t *testing.T) {
	svc := newService(&fakeStore{snap: fixture()})

	r, err := svc.LongStay(context.Background(), model.CensusFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(r.ActivePatients))
	assert.Equal(t, 2, r.Count)
}

func TestServiceSpecialties(t *testing.T) {
	svc := newService(&fakeStore{snap: fixture()})

	out, err := svc.Specialties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Internal Medicine", out[0].Specialty)
	assert.Equal(t, model.SafetyAdmissionDepartment, out[len(out)-1].Specialty)
}

func TestServicePropagatesPersistenceErrors(t *testing.T) {
	cause := apperrors.Persistence("list patients", errors.New("connection refused"))
	svc := newService(&fakeStore{snap: fixture(), err: cause})

	_, err := svc.Census(context.Background(), model.CensusFilter{})
	require.Error(t, err)
	assert.True(t, apperrors.IsPersistence(err))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(model.CensusQuery{})
	require.NoError(t, err)
	assert.Equal(t, model.CensusFilter{}, f)

	f, err = ParseFilter(model.CensusQuery{Specialty: " Neurology ", DoctorID: 4, Start: "2024-03-01", End: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, "Neurology", f.Specialty)
	assert.Equal(t, int64(4), f.DoctorID)
	require.NotNil(t, f.DateRange)
	assert.True(t, f.DateRange.Contains(time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)))
	assert.False(t, f.DateRange.Contains(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))

	_, err = ParseFilter(model.CensusQuery{Start: "2024-03-01"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = ParseFilter(model.CensusQuery{Start: "2024-03-10", End: "2024-03-01"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = ParseFilter(model.CensusQuery{Start: "yesterday", End: "2024-03-01"})
	assert.True(t, apperrors.IsValidation(err))
}
