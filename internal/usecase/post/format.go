package post

import (
	"fmt"
	"strings"
	"time"

	"oryx-daily/internal/domain/entity"
)

// headerDateLayout renders the run date the way the digest header shows it,
// e.g. "Monday, 02 January 2006".
const headerDateLayout = "Monday, 02 January 2006"

// FormatMessage renders the full Slack message for one channel: a branded
// header with the run date, the channel's country list, then the digest
// body. It is pure; the run date is injected so daemon runs and tests
// format identically.
func FormatMessage(date time.Time, channel entity.ChannelConfig, body string) string {
	header := fmt.Sprintf("*Oryx :large_orange_circle: — %s*", date.Format(headerDateLayout))
	countries := strings.Join(channel.Countries, ", ")
	return fmt.Sprintf("%s\n_Countries: %s_\n\n%s", header, countries, body)
}
