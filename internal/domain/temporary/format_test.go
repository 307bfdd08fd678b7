package temporary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	t.Run("整点小时", func(t *testing.T) {
		assert.Equal(t, "1:00:00", FormatDuration(time.Hour))
	})

	t.Run("混合时分秒", func(t *testing.T) {
		assert.Equal(t, "2:05:09", FormatDuration(2*time.Hour+5*time.Minute+9*time.Second))
	})

	t.Run("零值", func(t *testing.T) {
		assert.Equal(t, "0:00:00", FormatDuration(0))
	})

	t.Run("负值按零处理", func(t *testing.T) {
		assert.Equal(t, "0:00:00", FormatDuration(-30*time.Second))
	})

	t.Run("秒以下小数截断", func(t *testing.T) {
		assert.Equal(t, "0:00:01", FormatDuration(1900*time.Millisecond))
	})

	t.Run("超过一天不换行进位", func(t *testing.T) {
		assert.Equal(t, "25:00:00", FormatDuration(25*time.Hour))
	})
}

func TestParseFlexibleDuration(t *testing.T) {
	t.Run("时钟格式", func(t *testing.T) {
		assert.Equal(t, 90*time.Second, ParseFlexibleDuration("0:01:30"))
		assert.Equal(t, time.Hour+time.Second, ParseFlexibleDuration("1:00:01"))
	})

	t.Run("纯数字秒数", func(t *testing.T) {
		assert.Equal(t, 90*time.Second, ParseFlexibleDuration("90"))
	})

	t.Run("小数秒数", func(t *testing.T) {
		assert.Equal(t, 90*time.Second+500*time.Millisecond, ParseFlexibleDuration("90.5"))
	})

	t.Run("空字符串按零处理", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), ParseFlexibleDuration(""))
		assert.Equal(t, time.Duration(0), ParseFlexibleDuration("   "))
	})

	t.Run("格式错误按零处理", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), ParseFlexibleDuration("abc"))
		assert.Equal(t, time.Duration(0), ParseFlexibleDuration("1:30"))
		assert.Equal(t, time.Duration(0), ParseFlexibleDuration("1:xx:00"))
	})

	t.Run("负数按零处理", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), ParseFlexibleDuration("-30"))
	})
}

func TestParseTime(t *testing.T) {
	t.Run("RFC3339 正常解析", func(t *testing.T) {
		parsed, ok := parseTime("2025-06-01T12:00:00Z")
		assert.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), parsed)
	})

	t.Run("带纳秒与时区", func(t *testing.T) {
		parsed, ok := parseTime("2025-06-01T20:00:00.5+08:00")
		assert.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 500000000, time.UTC), parsed)
	})

	t.Run("空与非法值", func(t *testing.T) {
		_, ok := parseTime("")
		assert.False(t, ok)
		_, ok = parseTime("not-a-time")
		assert.False(t, ok)
	})
}

func TestExternalState(t *testing.T) {
	t.Run("终结态对外呈现为 idle", func(t *testing.T) {
		assert.Equal(t, "idle", ExternalState(StateFinalized))
	})

	t.Run("其余状态原样呈现", func(t *testing.T) {
		assert.Equal(t, "idle", ExternalState(StateIdle))
		assert.Equal(t, "active", ExternalState(StateActive))
		assert.Equal(t, "paused", ExternalState(StatePaused))
	})
}
