package channel

import "github.com/tiktoksage/tiksage/internal/ytdlp"

// Browser identities presented to the platform. Channel pages answer
// differently depending on the requesting client, so enumeration tries a
// fixed ladder of identities before giving up.
const (
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	mobileUserAgent  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
	siteReferer      = "https://www.tiktok.com/"
)

// enumStrategy is one attempt configuration. Strategies run in order; the
// first one to yield any videos wins.
type enumStrategy struct {
	name string
	opts ytdlp.Options
}

// strategies is the fixed fallback ladder: fast flat extraction first under
// different client identities, then a full (slow) metadata pass, then a lazy
// paged pass for channels that only answer incrementally.
var strategies = []enumStrategy{
	{name: "desktop flat", opts: ytdlp.Options{UserAgent: desktopUserAgent, FlatExtract: true}},
	{name: "mobile flat", opts: ytdlp.Options{UserAgent: mobileUserAgent, FlatExtract: true}},
	{name: "desktop with referer", opts: ytdlp.Options{UserAgent: desktopUserAgent, Referer: siteReferer, FlatExtract: true}},
	{name: "full metadata", opts: ytdlp.Options{UserAgent: desktopUserAgent}},
	{name: "paged lazy", opts: ytdlp.Options{UserAgent: desktopUserAgent, FlatExtract: true, PagedExtract: true}},
}
