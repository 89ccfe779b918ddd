package announce

import (
	"fmt"
	"strings"
	"time"

	billingdomain "github.com/thititongumpun/uoobpremium/internal/billing/domain"
	"github.com/thititongumpun/uoobpremium/internal/discord"
	"github.com/thititongumpun/uoobpremium/internal/notify"
)

// Group-facing text is Thai, matching the channel the bot posts to.
var thaiMonths = []string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var thaiMonthsAbbrev = []string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

const reminderGIF = "https://media0.giphy.com/media/v1.Y2lkPTc5MGI3NjExcXV3eGM2MWxmcWt6azE2ZmRteGpndXhsd3Bjbnc0cmtscWdnMndxNSZlcD12MV9pbnRlcm5hbF9naWZfYnlfaWQmY3Q9Zw/cXMFmN3edhlHI5vRsG/giphy.gif"

// MonthName returns the full Thai month name for a period.
func MonthName(period billingdomain.Period) string {
	if period.Month < 1 || period.Month > len(thaiMonths) {
		return fmt.Sprintf("%d", period.Month)
	}
	return thaiMonths[period.Month-1]
}

// MonthAbbrev returns the abbreviated Thai month name for a period.
func MonthAbbrev(period billingdomain.Period) string {
	if period.Month < 1 || period.Month > len(thaiMonthsAbbrev) {
		return fmt.Sprintf("%d", period.Month)
	}
	return thaiMonthsAbbrev[period.Month-1]
}

// StatusLine renders one member's row: ordinal, paid icon, mention or
// bold name, and a paid/pending label.
func StatusLine(index int, status billingdomain.PaymentStatus, pendingText string) string {
	icon := "⏳"
	statusText := pendingText
	if status.IsPaid {
		icon = "✅"
		statusText = "จ่ายแล้ว"
	}

	display := "**" + status.Name + "**"
	if status.Name == "" {
		display = "**ไม่ระบุชื่อ**"
	}
	if status.DiscordID != nil && *status.DiscordID != "" {
		display = "<@" + *status.DiscordID + ">"
	}

	return fmt.Sprintf("%d. %s %s (%s)", index+1, icon, display, statusText)
}

// StatusList renders all rows joined by newlines.
func StatusList(statuses []billingdomain.PaymentStatus, pendingText string) string {
	lines := make([]string, 0, len(statuses))
	for i, status := range statuses {
		lines = append(lines, StatusLine(i, status, pendingText))
	}
	return strings.Join(lines, "\n")
}

// Cycle builds the new-cycle announcement webhook message.
func Cycle(period billingdomain.Period, statuses []billingdomain.PaymentStatus, now time.Time) notify.Message {
	statusList := StatusList(statuses, "รอชำระเงิน")

	embed := discord.Embed{
		Title: fmt.Sprintf("🔔 แจ้งเตือนชำระค่าบริการ ประจำเดือน%s %d", MonthName(period), period.Year),
		Description: "บิลรอบใหม่มาแล้วครับทุกคน! รบกวนตรวจสอบและชำระค่าบริการด้วยนะครับ\n\n" +
			"**รายชื่อสมาชิก:**\n" + statusList,
		Color: discord.ColorAlert,
		Image: &discord.EmbedImage{URL: reminderGIF},
		Footer: &discord.EmbedFooter{
			Text: "ระบบแจ้งเตือนอัตโนมัติ | " + now.Format("15:04:05"),
		},
		Timestamp: now.Format(time.RFC3339),
	}

	return notify.Message{
		Content: "📢 **ประกาศ: ค่าบริการรอบใหม่มาแล้วฮ้าฟฟู่**",
		Embeds:  []discord.Embed{embed},
	}
}

// Summary builds the checkbill embed for a cycle.
func Summary(summary billingdomain.BillSummary, now time.Time) discord.Embed {
	color := discord.ColorUnpaid
	overall := "📢 มีสมาชิกที่ยังไม่ได้ชำระเงิน"
	if summary.AllPaid {
		color = discord.ColorPaid
		overall = "🎉 จ่ายครบทุกคนแล้ว!"
	}

	return discord.Embed{
		Title:       fmt.Sprintf("🧾 สรุปยอดค่าบริการรอบเดือน %s %d", MonthAbbrev(summary.Period), summary.Period.Year),
		Description: "สถานะการชำระเงินของสมาชิกทั้งหมด",
		Color:       color,
		Fields: []discord.EmbedField{
			{Name: "รายชื่อสมาชิก", Value: StatusList(summary.Statuses, "ค้างจ่าย")},
			{Name: "📊 สรุปภาพรวม", Value: overall},
		},
		Footer: &discord.EmbedFooter{
			Text: "ข้อมูล ณ เวลา: " + now.Format("15:04:05"),
		},
	}
}

// NotFound builds the embed returned when a cycle has no rows.
func NotFound(period billingdomain.Period) discord.Embed {
	return discord.Embed{
		Title:       "❌ ไม่พบรายการบิล",
		Description: fmt.Sprintf("ยังไม่มีข้อมูลบิลสำหรับเดือน %d/%d", period.Month, period.Year),
		Color:       discord.ColorNeutral,
	}
}
