package services

import (
	"strings"
	"testing"

	"tokenvest/internal/models"
	"tokenvest/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(db)

	svc.Log("user-1", "PURCHASE_TOKENS", "investment", "inv-1", "127.0.0.1", map[string]interface{}{"amount": 3})
	svc.Log("user-1", "DELETE_INVESTMENT", "investment", "inv-2", "127.0.0.1", nil)

	var logs []models.AuditLog
	if err := db.Order("created_at ASC, id ASC").Find(&logs).Error; err != nil {
		t.Fatalf("failed to read audit logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(logs))
	}
	if logs[0].Action != "PURCHASE_TOKENS" || !strings.Contains(logs[0].Changes, `"amount":3`) {
		t.Errorf("unexpected first entry %+v", logs[0])
	}
	if logs[1].Changes != "" {
		t.Errorf("expected empty changes, got %q", logs[1].Changes)
	}
}

func TestAuditLogNeverPanicsOnClosedDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(db)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	svc.Log("user-1", "PURCHASE_TOKENS", "investment", "inv-1", "", map[string]interface{}{"bad": make(chan int)})
}
