package mapping

import (
	"testing"

	"github.com/SscSPs/teamops_backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainKpiDetails_Standalone(t *testing.T) {
	d := ToDomainKpiDetails(models.KpiRow{KpiID: "k1", CreatorID: "u1", CreatorEmail: "u1@teamops.com"}, nil)

	assert.Nil(t, d.Project)
	assert.Nil(t, d.Access.Project)
	assert.Equal(t, "u1", d.Access.CreatorID)
	assert.Equal(t, "u1@teamops.com", d.Creator.Email)
}

func TestToDomainKpiDetails_WithProject(t *testing.T) {
	pid, name, mgr, creator := "p1", "Apollo", "m1", "c1"
	row := models.KpiRow{
		KpiID:            "k1",
		CreatorID:        "u1",
		ProjectID:        &pid,
		ProjectName:      &name,
		ProjectManagerID: &mgr,
		ProjectCreatorID: &creator,
		ValueCount:       3,
	}

	d := ToDomainKpiDetails(row, []string{"e1"})
	require.NotNil(t, d.Project)
	assert.Equal(t, "Apollo", d.Project.Name)
	require.NotNil(t, d.Access.Project)
	assert.Equal(t, "m1", d.Access.Project.ManagerID)
	assert.Equal(t, "c1", d.Access.Project.CreatorID)
	assert.Equal(t, []string{"e1"}, d.Access.Project.MemberIDs)
	assert.Equal(t, 3, d.ValueCount)
}

func TestToDomainProjectDetails(t *testing.T) {
	d := ToDomainProjectDetails(models.ProjectRow{
		ProjectID:        "p1",
		Status:           "ON_HOLD",
		ManagerID:        "m1",
		ManagerFirstName: "Mia",
		CreatorID:        "c1",
		EmployeeCount:    2,
		KpiCount:         5,
	})

	assert.Equal(t, "Mia", d.Manager.FirstName)
	assert.Equal(t, "m1", d.Manager.UserID)
	assert.Equal(t, 2, d.MemberCount)
	assert.Equal(t, 5, d.KpiCount)
	assert.NotNil(t, d.Members)
	assert.Equal(t, "m1", d.Access().ManagerID)
}
