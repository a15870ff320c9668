package leave

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDaysInclusive(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"same day", "2024-06-01", "2024-06-01", 1},
		{"five days", "2024-06-01", "2024-06-05", 5},
		{"across month", "2024-01-30", "2024-02-02", 4},
		{"leap day", "2024-02-28", "2024-03-01", 3},
		{"end before start", "2024-06-05", "2024-06-01", -3},
		{"four centuries", "1800-01-01", "2200-01-01", 146098},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := time.Parse(validator.DateLayout, tt.start)
			end, _ := time.Parse(validator.DateLayout, tt.end)
			assert.Equal(t, tt.want, DaysInclusive(start, end))
		})
	}
}

func TestDaysInclusive_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	start := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)
	end := time.Date(2024, 6, 3, 0, 15, 0, 0, loc)
	assert.Equal(t, 3, DaysInclusive(start, end))
}

func TestTypeRequiresDeduction(t *testing.T) {
	for _, lt := range Types {
		want := lt == string(TypeAnnual) || lt == string(TypeSickWithoutDocument)
		assert.Equal(t, want, Type(lt).RequiresDeduction(), lt)
	}
}

func TestCreateApplicationRequest_Validate(t *testing.T) {
	t.Run("valid request computes days", func(t *testing.T) {
		req := CreateApplicationRequest{
			UserID:    "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
			Type:      string(TypeAnnual),
			StartDate: "2024-06-01",
			EndDate:   "2024-06-05",
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, 5, req.Days)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := CreateApplicationRequest{}
		err := req.Validate()

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := verrs.ToMap()
		assert.Contains(t, fields, "userId")
		assert.Contains(t, fields, "type")
		assert.Contains(t, fields, "startDate")
		assert.Contains(t, fields, "endDate")
	})

	t.Run("malformed user id", func(t *testing.T) {
		req := CreateApplicationRequest{
			UserID:    "not-a-uuid",
			Type:      string(TypeAnnual),
			StartDate: "2024-06-01",
			EndDate:   "2024-06-01",
		}
		err := req.Validate()

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "userId must be a valid UUID", verrs.ToMap()["userId"])
	})

	t.Run("end before start", func(t *testing.T) {
		req := CreateApplicationRequest{
			UserID:    "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
			Type:      string(TypeRemoteWork),
			StartDate: "2024-06-05",
			EndDate:   "2024-06-01",
		}
		err := req.Validate()

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "End date must be after start date", verrs.ToMap()["endDate"])
	})

	t.Run("unknown type", func(t *testing.T) {
		req := CreateApplicationRequest{
			UserID:    "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
			Type:      "Holiday",
			StartDate: "2024-06-01",
			EndDate:   "2024-06-01",
		}
		assert.Error(t, req.Validate())
	})

	t.Run("accepts RFC 3339 timestamps", func(t *testing.T) {
		req := CreateApplicationRequest{
			UserID:    "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
			Type:      string(TypeUnpaid),
			StartDate: "2024-06-01T00:00:00Z",
			EndDate:   "2024-06-02T00:00:00Z",
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, 2, req.Days)
	})
}

func TestCreateApplicationRequest_ValidateBusinessLeave(t *testing.T) {
	req := CreateApplicationRequest{Type: string(TypeBusiness), BusinessLeavePurpose: strPtr("Client visit")}
	err := req.ValidateBusinessLeave()

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "businessLeaveDestination")

	req.BusinessLeaveDestination = strPtr("Jakarta")
	assert.NoError(t, req.ValidateBusinessLeave())

	other := CreateApplicationRequest{Type: string(TypeAnnual)}
	assert.NoError(t, other.ValidateBusinessLeave())
}

func TestUpdateApplicationRequest_Validate(t *testing.T) {
	ok := UpdateApplicationRequest{Status: strPtr("Approved")}
	assert.NoError(t, ok.Validate())

	bad := UpdateApplicationRequest{Status: strPtr("approved")}
	assert.Error(t, bad.Validate())

	assert.Equal(t, StatusPending, (&UpdateApplicationRequest{}).NewStatus(StatusPending))
	assert.Equal(t, StatusRejected, (&UpdateApplicationRequest{Status: strPtr("Rejected")}).NewStatus(StatusPending))
}

func TestInsufficientBalanceError(t *testing.T) {
	err := fmt.Errorf("create application: %w", &InsufficientBalanceError{Available: 15, Requested: 20})

	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.Contains(t, err.Error(), "Available: 15 days, Requested: 20 days")

	var ibe *InsufficientBalanceError
	require.True(t, errors.As(err, &ibe))
	assert.Equal(t, 15, ibe.Available)
}

func TestApplicationHoldsBalance(t *testing.T) {
	a := Application{DeductedFromBalance: true, Status: StatusPending}
	assert.True(t, a.HoldsBalance())
	a.Status = StatusRejected
	assert.False(t, a.HoldsBalance())
	assert.False(t, Application{Status: StatusApproved}.HoldsBalance())
}
