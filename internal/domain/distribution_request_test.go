package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriority_EstimatedDeliveryTime(t *testing.T) {
	assert.Equal(t, "6-12 hours", PriorityUrgent.EstimatedDeliveryTime())
	assert.Equal(t, "1-2 days", PriorityHigh.EstimatedDeliveryTime())
	assert.Equal(t, "2-3 days", PriorityNormal.EstimatedDeliveryTime())
	assert.Equal(t, "3-5 days", PriorityLow.EstimatedDeliveryTime())
}

func TestPriority_ValidAndLabel(t *testing.T) {
	assert.True(t, PriorityUrgent.Valid())
	assert.False(t, Priority("critical").Valid())
	assert.Equal(t, "Urgent", PriorityUrgent.Label())
	assert.Equal(t, "Unknown", Priority("").Label())
}

func TestPackageTemplate_SelectableBy(t *testing.T) {
	tpl := PackageTemplate{ID: "tpl-1", OrganizationID: "org-1", Status: TemplateStatusActive}
	assert.True(t, tpl.SelectableBy("org-1"))
	assert.False(t, tpl.SelectableBy("org-2"))

	tpl.Status = TemplateStatusInactive
	assert.False(t, tpl.SelectableBy("org-1"))
}
