package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taoyao-code/accel-parser/internal/protocol/g4"
)

var rule = strings.Repeat("-", 30)

// PrintStatistics 输出会话统计
// 有效帧为 0 时只输出总帧数
func PrintStatistics(w io.Writer, s g4.Statistics) error {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "STATISTICS")
	fmt.Fprintf(&b, "Total messages: %d\n", s.TotalMessages)

	if s.ValidMessages > 0 {
		fmt.Fprintf(&b, "Valid message: %d - %s\n", s.ValidMessages, percent(s.Ratio(s.ValidMessages)))
		fmt.Fprintf(&b, "Invalid checksum messages: %d - %s\n", s.InvalidChecksumMessages, percent(s.Ratio(s.InvalidChecksumMessages)))
		if s.InvalidPayloadMessages > 0 {
			fmt.Fprintf(&b, "Invalid payload messages: %d - %s\n", s.InvalidPayloadMessages, percent(s.Ratio(s.InvalidPayloadMessages)))
		}
		fmt.Fprintf(&b, "Total alerts: %d - %s\n", s.AlertCount, percent(s.Ratio(s.AlertCount)))
		fmt.Fprintf(&b, "Max G X-Axis: %s\n", twoDigits(s.MaxX))
		fmt.Fprintf(&b, "Max G Y-Axis: %s\n", twoDigits(s.MaxY))
		fmt.Fprintf(&b, "Max G Z-Axis: %s\n", twoDigits(s.MaxZ))
	}

	fmt.Fprintln(&b, rule)
	_, err := io.WriteString(w, b.String())
	return err
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// twoDigits 两位有效数字，与旧版报告一致：
// 定点形式至少保留一位小数（1.0、0.2、0.016），指数 >= 1 或 < -4 时用科学计数（1.2e+01）
func twoDigits(v float64) string {
	e := strconv.FormatFloat(v, 'e', 1, 64) // d.de±XX
	mant, exp, _ := strings.Cut(e, "e")
	n, err := strconv.Atoi(exp)
	if err != nil {
		return e
	}
	if n < -4 || n >= 1 {
		mant = strings.TrimSuffix(strings.TrimRight(mant, "0"), ".")
		return mant + "e" + exp
	}
	f := strconv.FormatFloat(v, 'g', 2, 64)
	if !strings.ContainsAny(f, ".e") {
		f += ".0"
	}
	return f
}
