package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"calibration-system/internal/calibration"
	"calibration-system/internal/dto"
	"calibration-system/internal/repositories"
	"calibration-system/pkg/mailer"
)

const defaultReminderOffsets = "30,7"

type NotificationService struct {
	equipmentRepository    repositories.EquipmentRepositoryInterface
	emailSettingRepository repositories.EmailSettingRepositoryInterface
	mailer                 mailer.Mailer
	logger                 *zap.Logger
}

func NewNotificationService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	emailSettingRepository repositories.EmailSettingRepositoryInterface,
	m mailer.Mailer,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		equipmentRepository:    equipmentRepository,
		emailSettingRepository: emailSettingRepository,
		mailer:                 m,
		logger:                 logger,
	}
}

// SendWeeklyReport собирает просроченное и предстоящее оборудование и
// рассылает сводку. Отчёт не уходит, если выключен настройкой или
// список получателей пуст.
func (s *NotificationService) SendWeeklyReport(ctx context.Context) (*dto.WeeklyReportResultDTO, error) {
	settings, err := s.emailSettingRepository.GetSettingsMap(ctx)
	if err != nil {
		return nil, err
	}

	if settings["weekly_report_enabled"] != "true" {
		s.logger.Info("Еженедельный отчёт выключен настройкой")
		return &dto.WeeklyReportResultDTO{SkippedReason: "weekly_report_enabled != true"}, nil
	}

	recipients := splitRecipients(settings["report_recipients"])
	if len(recipients) == 0 {
		s.logger.Warn("Еженедельный отчёт: получатели не настроены")
		return &dto.WeeklyReportResultDTO{SkippedReason: "нет получателей"}, nil
	}

	overdue, err := s.equipmentRepository.GetOverdueByDate(ctx)
	if err != nil {
		s.logger.Error("Ошибка выборки просроченного оборудования", zap.Error(err))
		return nil, err
	}

	inProgress, err := s.equipmentRepository.GetInProgress(ctx)
	if err != nil {
		s.logger.Error("Ошибка выборки оборудования в процессе поверки", zap.Error(err))
		return nil, err
	}

	rows, err := s.equipmentRepository.GetEquipmentWithFilters(ctx, dto.EquipmentFilterDTO{})
	if err != nil {
		s.logger.Error("Ошибка выборки оборудования для отчёта", zap.Error(err))
		return nil, err
	}
	upcoming := upcomingWithinWindow(rows, time.Now())

	msg := mailer.Message{
		FromName:  settings["email_from_name"],
		FromEmail: settings["email_from_address"],
		To:        recipients,
		Subject:   fmt.Sprintf("Еженедельный отчёт по поверкам — %s", time.Now().Format("02.01.2006")),
		HTMLBody:  buildWeeklyReportBody(len(rows), overdue, inProgress, upcoming, settings["email_signature"]),
	}

	if err := s.mailer.Send(msg); err != nil {
		s.logger.Error("Не удалось отправить еженедельный отчёт", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Еженедельный отчёт отправлен",
		zap.Int("total", len(rows)),
		zap.Int("overdue", len(overdue)),
		zap.Int("in_progress", len(inProgress)),
		zap.Int("upcoming", len(upcoming)),
		zap.Strings("recipients", recipients))

	return &dto.WeeklyReportResultDTO{
		Sent:            true,
		Recipients:      recipients,
		TotalCount:      len(rows),
		OverdueCount:    len(overdue),
		InProgressCount: len(inProgress),
		UpcomingCount:   len(upcoming),
	}, nil
}

// SendReminders шлёт напоминание по каждой позиции, до поверки которой
// осталось ровно столько дней, сколько указано в reminder_days_before.
// Письмо уходит ответственному за позицию; без ответственного позиция
// пропускается. Ошибка отправки по одной позиции не прерывает обход
// остальных.
func (s *NotificationService) SendReminders(ctx context.Context) (*dto.ReminderResultDTO, error) {
	settings, err := s.emailSettingRepository.GetSettingsMap(ctx)
	if err != nil {
		return nil, err
	}

	offsets := parseReminderOffsets(settings["reminder_days_before"])

	rows, err := s.equipmentRepository.GetEquipmentWithFilters(ctx, dto.EquipmentFilterDTO{})
	if err != nil {
		return nil, err
	}

	today := time.Now()
	result := &dto.ReminderResultDTO{Checked: len(rows)}

	for _, row := range rows {
		if !row.NextCalibrationDate.Valid {
			continue
		}
		days := calibration.DaysUntilDue(row.NextCalibrationDate.Time, today)
		if !containsOffset(offsets, days) {
			continue
		}
		if row.AssignedPerson == "" {
			s.logger.Warn("Напоминание пропущено: у позиции нет ответственного",
				zap.Uint64("equipment_id", row.ID))
			continue
		}

		msg := mailer.Message{
			FromName:  settings["email_from_name"],
			FromEmail: settings["email_from_address"],
			To:        []string{row.AssignedPerson},
			Subject:   fmt.Sprintf("Напоминание: поверка «%s» через %d дн.", row.Name, days),
			HTMLBody:  buildReminderBody(row, days, settings["email_signature"]),
		}

		if err := s.mailer.Send(msg); err != nil {
			result.Errors++
			s.logger.Error("Не удалось отправить напоминание",
				zap.Uint64("equipment_id", row.ID), zap.Error(err))
			continue
		}
		result.Sent++
	}

	s.logger.Info("Напоминания о поверках обработаны",
		zap.Int("checked", result.Checked),
		zap.Int("sent", result.Sent),
		zap.Int("errors", result.Errors))
	return result, nil
}

// upcomingWithinWindow - позиции с датой поверки в окне [сегодня, +30 дней].
func upcomingWithinWindow(rows []repositories.EquipmentWithRelations, today time.Time) []repositories.EquipmentWithRelations {
	upcoming := make([]repositories.EquipmentWithRelations, 0)
	for _, row := range rows {
		if !row.NextCalibrationDate.Valid {
			continue
		}
		days := calibration.DaysUntilDue(row.NextCalibrationDate.Time, today)
		if days >= 0 && days <= calibration.DueSoonWindowDays {
			upcoming = append(upcoming, row)
		}
	}
	return upcoming
}

func buildWeeklyReportBody(total int, overdue, inProgress, upcoming []repositories.EquipmentWithRelations, signature string) string {
	var b strings.Builder
	b.WriteString("<h2>Еженедельный отчёт по поверкам</h2>")
	b.WriteString(fmt.Sprintf("<p>Всего единиц оборудования: %d</p>", total))

	b.WriteString(fmt.Sprintf("<h3>Просрочено: %d</h3>", len(overdue)))
	writeEquipmentTable(&b, overdue)

	b.WriteString(fmt.Sprintf("<h3>В процессе поверки: %d</h3>", len(inProgress)))
	writeEquipmentTable(&b, inProgress)

	b.WriteString(fmt.Sprintf("<h3>Предстоит в ближайшие 30 дней: %d</h3>", len(upcoming)))
	writeEquipmentTable(&b, upcoming)

	if signature != "" {
		b.WriteString("<p>" + signature + "</p>")
	}
	return b.String()
}

func buildReminderBody(row repositories.EquipmentWithRelations, days int, signature string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>До поверки оборудования «%s» (зав. № %s) осталось %d дн.</p>",
		row.Name, row.SerialNumber, days))
	b.WriteString(fmt.Sprintf("<p>Дата поверки: %s</p>", repositories.FormatDate(row.NextCalibrationDate)))
	if row.AssignedPerson != "" {
		b.WriteString(fmt.Sprintf("<p>Ответственный: %s</p>", row.AssignedPerson))
	}
	if signature != "" {
		b.WriteString("<p>" + signature + "</p>")
	}
	return b.String()
}

func writeEquipmentTable(b *strings.Builder, rows []repositories.EquipmentWithRelations) {
	if len(rows) == 0 {
		b.WriteString("<p>—</p>")
		return
	}
	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Наименование</th><th>Зав. №</th><th>Дата поверки</th><th>Ответственный</th></tr>")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			row.Name, row.SerialNumber, repositories.FormatDate(row.NextCalibrationDate), row.AssignedPerson))
	}
	b.WriteString("</table>")
}

func splitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	recipients := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}

func parseReminderOffsets(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		raw = defaultReminderOffsets
	}
	offsets := make([]int, 0, 2)
	for _, p := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			continue
		}
		offsets = append(offsets, n)
	}
	return offsets
}

func containsOffset(offsets []int, days int) bool {
	for _, o := range offsets {
		if o == days {
			return true
		}
	}
	return false
}
