package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
)

var ErrEmptySite = errors.New("empty_site")

const notRecorded = "-"

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

// GenerateFactSheet renders a one-site summary: identity, geography,
// inscription details and the description text.
func (p *PDFProvider) GenerateFactSheet(ctx context.Context, site sitedomain.Site) (io.Reader, error) {
	if site.HeritageSiteID == 0 && site.SiteName == "" {
		return nil, ErrEmptySite
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, site.SiteName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "World Heritage Site fact sheet", props.Text{
			Size:  10,
			Style: fontstyle.Italic,
		}),
	)
	m.AddRow(4, line.NewCol(12))

	for _, row := range factRows(site) {
		m.AddRow(8,
			text.NewCol(4, row.label, props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(8, row.value, props.Text{Size: 9}),
		)
	}

	m.AddRow(4, line.NewCol(12))
	m.AddRow(8,
		text.NewCol(12, "Description", props.Text{Style: fontstyle.Bold, Size: 11, Top: 2}),
	)
	m.AddAutoRow(
		col.New(12).Add(text.New(site.Description, props.Text{Size: 9, Top: 1})),
	)

	if site.Justification != nil && *site.Justification != "" {
		m.AddRow(10,
			text.NewCol(12, "Justification", props.Text{Style: fontstyle.Bold, Size: 11, Top: 4}),
		)
		m.AddAutoRow(
			col.New(12).Add(text.New(*site.Justification, props.Text{Size: 9, Top: 1})),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate fact sheet: %w", err)
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

type factRow struct {
	label string
	value string
}

func factRows(site sitedomain.Site) []factRow {
	category := notRecorded
	if site.HeritageSiteCategory != nil {
		category = site.HeritageSiteCategory.CategoryName
	}
	transboundary := "No"
	if site.Transboundary == 1 {
		transboundary = "Yes"
	}

	return []factRow{
		{"Category", category},
		{"Date inscribed", intOrDash(site.DateInscribed)},
		{"Countries/areas", orDash(site.CountryAreaNames)},
		{"Regions", orDash(site.RegionNames)},
		{"Sub-regions", orDash(site.SubRegionNames)},
		{"Intermediate regions", orDash(site.IntermediateRegionNames)},
		{"Transboundary", transboundary},
		{"Latitude", floatOrDash(site.Latitude, 8)},
		{"Longitude", floatOrDash(site.Longitude, 8)},
		{"Area (hectares)", floatOrDash(site.AreaHectares, 2)},
	}
}

func orDash(value string) string {
	if value == "" {
		return notRecorded
	}
	return value
}

func intOrDash(value *int) string {
	if value == nil {
		return notRecorded
	}
	return strconv.Itoa(*value)
}

func floatOrDash(value *float64, precision int) string {
	if value == nil {
		return notRecorded
	}
	return strconv.FormatFloat(*value, 'f', precision, 64)
}
