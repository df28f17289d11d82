package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"calibration-system/internal/entities"
	"calibration-system/internal/repositories"
	"calibration-system/pkg/mailer"
)

type stubEmailSettingRepo struct {
	settings map[string]string
}

func (r *stubEmailSettingRepo) GetEmailSettings(ctx context.Context) ([]entities.EmailSetting, error) {
	return nil, nil
}

func (r *stubEmailSettingRepo) GetSettingsMap(ctx context.Context) (map[string]string, error) {
	return r.settings, nil
}

func (r *stubEmailSettingRepo) UpsertSetting(ctx context.Context, name, value string) error {
	r.settings[name] = value
	return nil
}

type recordingMailer struct {
	messages []mailer.Message
	failFor  string // тема, на которой отправка должна упасть
}

func (m *recordingMailer) Send(msg mailer.Message) error {
	if m.failFor != "" && msg.Subject == m.failFor {
		return errors.New("smtp: connection refused")
	}
	m.messages = append(m.messages, msg)
	return nil
}

// equipmentDueIn выставляет дату так, чтобы ceil до поверки дал ровно days.
func equipmentDueIn(id uint64, name string, days int, assignee string) repositories.EquipmentWithRelations {
	due := time.Now().Add(time.Duration(days)*24*time.Hour - time.Hour)
	return repositories.EquipmentWithRelations{
		Equipment: entities.Equipment{
			ID:                  id,
			Name:                name,
			SerialNumber:        "SN",
			AssignedPerson:      assignee,
			NextCalibrationDate: null.TimeFrom(due),
		},
	}
}

func newNotificationServiceForTest(settings map[string]string, rows ...repositories.EquipmentWithRelations) (*NotificationService, *recordingMailer, *stubEquipmentRepo) {
	events := &[]string{}
	equipmentRepo := newStubEquipmentRepo(events)
	for _, row := range rows {
		equipmentRepo.items[row.ID] = row
	}
	m := &recordingMailer{}
	svc := NewNotificationService(equipmentRepo, &stubEmailSettingRepo{settings: settings}, m, zap.NewNop())
	return svc, m, equipmentRepo
}

func TestSendWeeklyReport_SkippedWhenDisabled(t *testing.T) {
	svc, m, _ := newNotificationServiceForTest(map[string]string{
		"weekly_report_enabled": "false",
		"report_recipients":     "physics@jefferson.edu",
	})

	res, err := svc.SendWeeklyReport(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Sent)
	assert.NotEmpty(t, res.SkippedReason)
	assert.Empty(t, m.messages)
}

func TestSendWeeklyReport_SkippedWithoutRecipients(t *testing.T) {
	svc, m, _ := newNotificationServiceForTest(map[string]string{
		"weekly_report_enabled": "true",
		"report_recipients":     "  ",
	})

	res, err := svc.SendWeeklyReport(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Sent)
	assert.Empty(t, m.messages)
}

func TestSendWeeklyReport_CountsUpcomingWithinWindow(t *testing.T) {
	svc, m, _ := newNotificationServiceForTest(map[string]string{
		"weekly_report_enabled": "true",
		"report_recipients":     "physics@jefferson.edu, qa@jefferson.edu",
		"email_from_name":       "Поверки",
		"email_from_address":    "calibration@jefferson.edu",
	},
		equipmentDueIn(1, "Камера в окне", 10, "jun.li@jefferson.edu"),
		equipmentDueIn(2, "Камера за окном", 45, "jun.li@jefferson.edu"),
	)

	res, err := svc.SendWeeklyReport(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Sent)
	assert.Equal(t, []string{"physics@jefferson.edu", "qa@jefferson.edu"}, res.Recipients)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, 1, res.UpcomingCount)

	require.Len(t, m.messages, 1)
	assert.Contains(t, m.messages[0].HTMLBody, "Всего единиц оборудования: 2")
	assert.Contains(t, m.messages[0].HTMLBody, "Камера в окне")
	assert.NotContains(t, m.messages[0].HTMLBody, "Камера за окном")
	assert.Equal(t, "calibration@jefferson.edu", m.messages[0].FromEmail)
}

func TestSendWeeklyReport_IncludesInProgressSection(t *testing.T) {
	inProgress := equipmentDueIn(3, "Дозиметр в поверке", 45, "jun.li@jefferson.edu")
	inProgress.IsInProgress = true

	svc, m, _ := newNotificationServiceForTest(map[string]string{
		"weekly_report_enabled": "true",
		"report_recipients":     "physics@jefferson.edu",
	},
		equipmentDueIn(1, "Камера в окне", 10, "jun.li@jefferson.edu"),
		inProgress,
	)

	res, err := svc.SendWeeklyReport(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Sent)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, 1, res.InProgressCount)

	require.Len(t, m.messages, 1)
	assert.Contains(t, m.messages[0].HTMLBody, "В процессе поверки: 1")
	assert.Contains(t, m.messages[0].HTMLBody, "Дозиметр в поверке")
}

func TestSendReminders_SentToAssignedPerson(t *testing.T) {
	svc, m, _ := newNotificationServiceForTest(map[string]string{
		"report_recipients":    "admin@jefferson.edu",
		"reminder_days_before": "7",
	},
		equipmentDueIn(1, "Камера Фармера", 7, "jun.li@jefferson.edu"),
	)

	res, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)

	require.Len(t, m.messages, 1)
	assert.Equal(t, []string{"jun.li@jefferson.edu"}, m.messages[0].To)
}

func TestSendReminders_SkipsWithoutAssignee(t *testing.T) {
	svc, m, _ := newNotificationServiceForTest(map[string]string{
		"reminder_days_before": "7",
	},
		equipmentDueIn(1, "Без ответственного", 7, ""),
		equipmentDueIn(2, "С ответственным", 7, "jun.li@jefferson.edu"),
	)

	res, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Checked)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 0, res.Errors)

	require.Len(t, m.messages, 1)
	assert.Equal(t, []string{"jun.li@jefferson.edu"}, m.messages[0].To)
}

func TestSendReminders_MatchesExactOffsets(t *testing.T) {
	svc, m, _ := newNotificationServiceForTest(map[string]string{
		"reminder_days_before": "30,7",
	},
		equipmentDueIn(1, "Ровно 7 дней", 7, "jun.li@jefferson.edu"),
		equipmentDueIn(2, "Ровно 30 дней", 30, "jun.li@jefferson.edu"),
		equipmentDueIn(3, "8 дней - мимо", 8, "jun.li@jefferson.edu"),
	)

	res, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Checked)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 0, res.Errors)
	assert.Len(t, m.messages, 2)
}

func TestSendReminders_DefaultOffsetsWhenUnset(t *testing.T) {
	// reminder_days_before и report_recipients не заданы: работают
	// офсеты по умолчанию, письмо уходит ответственному.
	svc, m, _ := newNotificationServiceForTest(map[string]string{},
		equipmentDueIn(1, "Ровно 30 дней", 30, "jun.li@jefferson.edu"),
	)

	res, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	require.Len(t, m.messages, 1)
	assert.Equal(t, []string{"jun.li@jefferson.edu"}, m.messages[0].To)
}

func TestSendReminders_ContinuesAfterSendError(t *testing.T) {
	svc, m, _ := newNotificationServiceForTest(map[string]string{
		"reminder_days_before": "7",
	},
		equipmentDueIn(1, "Первая", 7, "jun.li@jefferson.edu"),
		equipmentDueIn(2, "Вторая", 7, "jun.li@jefferson.edu"),
	)
	m.failFor = "Напоминание: поверка «Первая» через 7 дн."

	res, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 1, res.Sent)
}

func TestUpdateEmailSettings_WritesRowPerSetting(t *testing.T) {
	events := &[]string{}
	settingRepo := &stubEmailSettingRepo{settings: map[string]string{}}
	changeLogRepo := &stubChangeLogRepo{events: events}
	svc := NewEmailSettingsService(settingRepo, changeLogRepo, zap.NewNop())

	payload := map[string]string{
		"weekly_report_enabled": "true",
		"report_recipients":     "physics@jefferson.edu",
		"reminder_days_before":  "30,7",
	}

	_, err := svc.UpdateEmailSettings(context.Background(), payload, testActor)
	require.NoError(t, err)

	require.Len(t, changeLogRepo.entries, len(payload))
	seen := make(map[string]string)
	for _, entry := range changeLogRepo.entries {
		assert.Equal(t, "email_settings", entry.TableName)
		assert.Equal(t, entities.ChangeActionUpdate, entry.Action)
		assert.Empty(t, entry.OldValues)
		name, _ := entry.NewValues["setting_name"].(string)
		value, _ := entry.NewValues["setting_value"].(string)
		seen[name] = value
	}
	assert.Equal(t, payload, seen)
	assert.Equal(t, "true", settingRepo.settings["weekly_report_enabled"])
}
