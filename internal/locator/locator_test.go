package locator

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/jobcal/internal/config"
	"github.com/pfrederiksen/jobcal/internal/logger"
)

const pageURL = "https://fullcast.jp/flinkccpc/sc/ucas1008/12345"

func newDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestLocate_WorkPeriodStrategies(t *testing.T) {
	tests := []struct {
		name         string
		html         string
		wantFound    bool
		wantText     string
		wantStrategy string
	}{
		{
			name: "structural selector",
			html: `<div class="job-detail-row">
				<div class="job-detail-term">勤務期間</div><div>5/3(土)</div>
			</div>`,
			wantFound:    true,
			wantText:     "5/3(土)",
			wantStrategy: StrategySelector,
		},
		{
			name: "label scan when the term class is missing",
			html: `<div class="job-detail-row">
				<span class="term-v2">勤務期間</span><div>6/14(土)</div>
			</div>`,
			wantFound:    true,
			wantText:     "6/14(土)",
			wantStrategy: StrategyLabelScan,
		},
		{
			name:         "pattern over body text",
			html:         `<section><p>勤務日 7/1(火) 集合</p></section>`,
			wantFound:    true,
			wantText:     "7/1(",
			wantStrategy: StrategyPattern,
		},
		{
			name:         "full-width pattern is folded",
			html:         `<p>勤務日 ７／２（水）</p>`,
			wantFound:    true,
			wantText:     "7/2(",
			wantStrategy: StrategyPattern,
		},
		{
			name: "blank selector match falls through to label scan",
			html: `<div class="job-detail-row">
				<div class="job-detail-term">勤務期間</div><div>  </div>
			</div>
			<div class="job-detail-row"><b>勤務期間</b><p>8/8(金)</p></div>`,
			wantFound:    true,
			wantText:     "8/8(金)",
			wantStrategy: StrategyLabelScan,
		},
		{
			name:      "nothing matches",
			html:      `<p>お仕事はありません</p>`,
			wantFound: false,
		},
	}

	loc := New(config.Default(), pageURL)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := loc.Locate(newDoc(t, tt.html), WorkPeriod)

			require.Equal(t, tt.wantFound, ok)
			assert.Equal(t, WorkPeriod, raw.Field)
			if tt.wantFound {
				assert.Equal(t, tt.wantText, strings.TrimSpace(raw.Text))
				assert.Equal(t, tt.wantStrategy, raw.Strategy)
			}
		})
	}
}

func TestLocate_PrimaryWinsOverFallback(t *testing.T) {
	html := `
		<div class="job-detail-row"><b>勤務時間</b><p>8:00-12:00</p></div>
		<div class="job-detail-row"><div class="job-detail-time">勤務時間</div><div>9:00-17:30</div></div>`

	raw, ok := New(config.Default(), pageURL).Locate(newDoc(t, html), WorkTime)

	require.True(t, ok)
	assert.Equal(t, "9:00-17:30", raw.Text)
	assert.Equal(t, StrategySelector, raw.Strategy)
}

func TestLocate_WorkTimePattern(t *testing.T) {
	raw, ok := New(config.Default(), pageURL).Locate(newDoc(t, `<p>時間：9:00 ～ 18:00（休憩60分）</p>`), WorkTime)

	require.True(t, ok)
	assert.Equal(t, "9:00 ~ 18:00", raw.Text)
	assert.Equal(t, StrategyPattern, raw.Strategy)
}

func TestLocate_JobTitle(t *testing.T) {
	loc := New(config.Default(), pageURL)

	raw, ok := loc.Locate(newDoc(t, `<h2 class="job-title mt-2"> 軽作業 </h2>`), JobTitle)
	require.True(t, ok)
	assert.Equal(t, " 軽作業 ", raw.Text)

	_, ok = loc.Locate(newDoc(t, `<h2 class="job-title">軽作業</h2>`), JobTitle)
	assert.False(t, ok, "title needs both classes")
}

func TestLocate_MapLink(t *testing.T) {
	tests := []struct {
		name      string
		pageURL   string
		html      string
		want      string
		wantFound bool
	}{
		{
			name:      "relative href resolved against page URL",
			pageURL:   pageURL,
			html:      `<div class="job-traffic-info-box"><a class="map" href="/map/?lat=35.6&amp;lng=139.7">地図</a></div>`,
			want:      "https://fullcast.jp/map/?lat=35.6&lng=139.7",
			wantFound: true,
		},
		{
			name:      "absolute href kept",
			pageURL:   pageURL,
			html:      `<div class="job-traffic-info-box"><a class="map" href="https://maps.google.com/?q=35.681,139.767">地図</a></div>`,
			want:      "https://maps.google.com/?q=35.681,139.767",
			wantFound: true,
		},
		{
			name:    "base element wins over page URL",
			pageURL: pageURL,
			html: `<html><head><base href="https://cdn.example.jp/jobs/"></head><body>
				<div class="job-traffic-info-box"><a class="map" href="map.html">地図</a></div></body></html>`,
			want:      "https://cdn.example.jp/jobs/map.html",
			wantFound: true,
		},
		{
			name:      "relative href without page URL is not absolute",
			html:      `<div class="job-traffic-info-box"><a class="map" href="/map">地図</a></div>`,
			wantFound: false,
		},
		{
			name:      "anchor without href",
			pageURL:   pageURL,
			html:      `<div class="job-traffic-info-box"><a class="map">地図</a></div>`,
			wantFound: false,
		},
		{
			name:      "anchor outside the traffic box",
			pageURL:   pageURL,
			html:      `<a class="map" href="/map">地図</a>`,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := New(config.Default(), tt.pageURL).Locate(newDoc(t, tt.html), MapLink)

			require.Equal(t, tt.wantFound, ok)
			if tt.wantFound {
				assert.Equal(t, tt.want, raw.Text)
			}
		})
	}
}

func TestLocate_HeaderCells(t *testing.T) {
	html := `<table>
		<tr><th>服装</th><td>私服</td></tr>
		<tr><th>その他の持ち物</th><td>軍手</td></tr>
		<tr><th>持ち物</th><td>筆記用具</td></tr>
	</table>`
	loc := New(config.Default(), pageURL)
	doc := newDoc(t, html)

	raw, ok := loc.Locate(doc, Belongings)
	require.True(t, ok)
	assert.Equal(t, "軍手", raw.Text, "first header containing the label wins")

	raw, ok = loc.Locate(doc, Clothing)
	require.True(t, ok)
	assert.Equal(t, "私服", raw.Text)
}

func TestLocate_HeaderWithoutCell(t *testing.T) {
	html := `<table><tr><th>持ち物</th></tr><tr><th>服装</th><td>私服</td></tr></table>`
	loc := New(config.Default(), pageURL)
	doc := newDoc(t, html)

	_, ok := loc.Locate(doc, Belongings)
	assert.False(t, ok)

	_, ok = loc.Locate(doc, Clothing)
	assert.True(t, ok)
}

func TestLocate_HeaderBlankCellIsMiss(t *testing.T) {
	html := `<table>
		<tr><th>持ち物</th><td>  </td></tr>
		<tr><th>その他の持ち物</th><td>軍手</td></tr>
	</table>`

	_, ok := New(config.Default(), pageURL).Locate(newDoc(t, html), Belongings)
	assert.False(t, ok, "only the first matching header's cell is read")
}

func TestLocate_InvalidSelectorDegradesToNotFound(t *testing.T) {
	cfg := config.Default()
	cfg.Selectors.JobTitle = "h2[["
	cfg.Selectors.WorkTime = "div[["

	html := `<h2 class="job-title mt-2">軽作業</h2>
		<div class="job-detail-row"><div class="job-detail-time">勤務時間</div><div>9:00-17:30</div></div>`
	loc := New(cfg, pageURL)
	doc := newDoc(t, html)

	_, ok := loc.Locate(doc, JobTitle)
	assert.False(t, ok)

	raw, ok := loc.Locate(doc, WorkTime)
	require.True(t, ok, "fallback still runs after a broken primary selector")
	assert.Equal(t, StrategyLabelScan, raw.Strategy)
}

func TestLocate_PanicIsContained(t *testing.T) {
	loc := New(config.Default(), pageURL)
	loc.Append(JobTitle, Strategy{
		Name: "boom",
		Locate: func(*goquery.Document) (string, bool) {
			panic("traversal failed")
		},
	})
	loc.Append(JobTitle, Strategy{
		Name: "last",
		Locate: func(*goquery.Document) (string, bool) {
			return "見つかった", true
		},
	})

	raw, ok := loc.Locate(newDoc(t, `<p></p>`), JobTitle)
	require.True(t, ok)
	assert.Equal(t, "last", raw.Strategy)
}

func TestLocate_NilDocument(t *testing.T) {
	_, ok := New(config.Default(), pageURL).Locate(nil, WorkPeriod)
	assert.False(t, ok)
}

func TestCheck(t *testing.T) {
	html := `<h2 class="job-title mt-2">軽作業</h2><table><tr><th>服装</th><td>私服</td></tr></table>`

	statuses := New(config.Default(), pageURL).Check(newDoc(t, html))

	require.Len(t, statuses, len(AllFields()))
	found := map[Field]bool{}
	for _, s := range statuses {
		found[s.Field] = s.Found
		assert.NotEmpty(t, s.Name)
	}
	assert.True(t, found[JobTitle])
	assert.True(t, found[Clothing])
	assert.False(t, found[Belongings])
	assert.False(t, found[MapLink])

	gauges := logger.GetMetricsSnapshot()["gauges"].(map[string]float64)
	assert.Equal(t, 2.0, gauges["locator.fields_found"])
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "work_period", WorkPeriod.String())
	assert.Equal(t, "clothing", Clothing.String())
	assert.Equal(t, "unknown", Field(99).String())
	assert.Equal(t, "持ち物", Belongings.DisplayName())

	text, err := MapLink.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "map_link", string(text))
}
