// Package businessflow_test contains integration tests for account management
package businessflow_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeworks/Gopuram/app/dto"
	businessflow "github.com/templeworks/Gopuram/business_flow"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/repository"
	testingutil "github.com/templeworks/Gopuram/testing"
	"github.com/templeworks/Gopuram/utils"
)

func setupAccountFlowTest(t *testing.T) (*testingutil.TestDB, *testingutil.TestFixtures, businessflow.AccountFlow) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}
	t.Cleanup(func() {
		_ = testDB.TeardownTestDB()
	})

	userRepo := repository.NewUserRepository(testDB.DB)
	auditRepo := repository.NewAuditLogRepository(testDB.DB)
	accountFlow := businessflow.NewAccountFlow(userRepo, auditRepo, testDB.DB)

	return testDB, testingutil.NewTestFixtures(testDB), accountFlow
}

func testMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")
}

func TestAccountFlowSignup(t *testing.T) {
	_, _, accountFlow := setupAccountFlowTest(t)

	empIDPattern := regexp.MustCompile(`^\d{5}$`)

	t.Run("SuccessfulSignup", func(t *testing.T) {
		req := &dto.SignupRequest{
			FirstName: "Arjun",
			LastName:  "Sharma",
			Email:     "arjun.sharma@example.com",
			Phone:     "+15550100100",
			Password:  "StrongPass1",
		}

		result, err := accountFlow.Signup(context.Background(), req, testMetadata())
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, req.Email, result.User.Email)
		assert.Equal(t, models.RoleDevotee, result.User.Role)
		assert.Regexp(t, empIDPattern, result.User.EmpID)
		assert.True(t, utils.IsTrue(result.User.IsActive))
		assert.NotEmpty(t, result.User.UUID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		req := &dto.SignupRequest{
			FirstName: "Arjun",
			LastName:  "Sharma",
			Email:     "duplicate@example.com",
			Phone:     "+15550100101",
			Password:  "StrongPass1",
		}

		_, err := accountFlow.Signup(context.Background(), req, testMetadata())
		require.NoError(t, err)

		_, err = accountFlow.Signup(context.Background(), req, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsEmailAlreadyExists(err))
	})
}

func TestAccountFlowCreatePriest(t *testing.T) {
	_, _, accountFlow := setupAccountFlowTest(t)

	req := &dto.CreatePriestRequest{
		FirstName: "Rama",
		LastName:  "Iyer",
		Email:     "rama.iyer@example.com",
		Phone:     "+15550100102",
		Password:  "StrongPass1",
	}

	result, err := accountFlow.CreatePriest(context.Background(), req, testMetadata())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.RolePriest, result.User.Role)
	assert.Equal(t, req.Email, result.User.Email)
}

func TestAccountFlowListUsers(t *testing.T) {
	_, fixtures, accountFlow := setupAccountFlowTest(t)

	_, err := fixtures.CreateTestUser(models.RoleDevotee)
	require.NoError(t, err)
	_, err = fixtures.CreateTestUser(models.RolePriest)
	require.NoError(t, err)
	_, err = fixtures.CreateTestUser(models.RolePriest)
	require.NoError(t, err)

	t.Run("ListAll", func(t *testing.T) {
		users, err := accountFlow.ListUsers(context.Background(), 0, 0)
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})

	t.Run("ListByRole", func(t *testing.T) {
		priests, err := accountFlow.ListByRole(context.Background(), models.RolePriest, 0, 0)
		require.NoError(t, err)
		assert.Len(t, priests, 2)
		for _, priest := range priests {
			assert.Equal(t, models.RolePriest, priest.Role)
		}
	})
}

func TestAccountFlowDeleteUser(t *testing.T) {
	testDB, fixtures, accountFlow := setupAccountFlowTest(t)

	t.Run("SuccessfulDelete", func(t *testing.T) {
		user, err := fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		err = accountFlow.DeleteUser(context.Background(), user.ID, testMetadata())
		require.NoError(t, err)

		userRepo := repository.NewUserRepository(testDB.DB)
		deleted, err := userRepo.ByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Nil(t, deleted)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		err := accountFlow.DeleteUser(context.Background(), 999999, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsUserNotFound(err))
	})
}

func TestGenerateEmpID(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{5}$`)

	for range 100 {
		empID, err := businessflow.GenerateEmpID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, empID)
	}
}
