package curation

import (
	"testing"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

func regularSession() *Session {
	s := NewSession()
	s.Layout[HeaderLeft] = model.NewRect(10, 10, 100, 90)
	s.Layout[HeaderRight] = model.NewRect(100, 10, 200, 90)
	s.Layout[ColumnLeft] = model.NewRect(10, 100, 100, 700)
	s.Layout[ColumnRight] = model.NewRect(110, 100, 200, 700)
	s.Layout[Footer] = model.NewRect(10, 710, 200, 780)
	return s
}

func checkPlan(t *testing.T, got, want []Region) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d regions, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("region %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestPlanRegular tests the region order without exceptions
func TestPlanRegular(t *testing.T) {
	s := regularSession()
	col := func(k Key, page int) Region { return Region{Key: k, Page: page, Rect: s.Layout[k]} }

	checkPlan(t, Plan(s, 2), []Region{
		col(HeaderLeft, 0),
		col(HeaderRight, 0),
		col(ColumnLeft, 0),
		col(ColumnRight, 0),
		col(ColumnLeft, 1),
		col(ColumnRight, 1),
		col(Footer, 1),
	})
}

// TestPlanException tests that columns are split around an exception
func TestPlanException(t *testing.T) {
	s := regularSession()
	delete(s.Layout, HeaderLeft)
	delete(s.Layout, HeaderRight)
	delete(s.Layout, Footer)
	ex := model.NewRect(10, 300, 200, 400)
	s.AddException(0, ex)

	checkPlan(t, Plan(s, 1), []Region{
		{Key: ColumnLeft, Page: 0, Rect: model.NewRect(10, 100, 100, 300)},
		{Key: ColumnRight, Page: 0, Rect: model.NewRect(110, 100, 200, 300)},
		{Key: ImageException, Page: 0, Rect: ex},
		{Key: ColumnLeft, Page: 0, Rect: model.NewRect(10, 400, 100, 700)},
		{Key: ColumnRight, Page: 0, Rect: model.NewRect(110, 400, 200, 700)},
	})
}

// TestPlanExceptionAtTop tests that no empty piece is cut above an
// exception touching the column top
func TestPlanExceptionAtTop(t *testing.T) {
	s := regularSession()
	delete(s.Layout, HeaderLeft)
	delete(s.Layout, HeaderRight)
	delete(s.Layout, Footer)
	delete(s.Layout, ColumnRight)
	ex := model.NewRect(10, 50, 100, 200)
	s.AddException(0, ex)

	checkPlan(t, Plan(s, 1), []Region{
		{Key: ImageException, Page: 0, Rect: ex},
		{Key: ColumnLeft, Page: 0, Rect: model.NewRect(10, 200, 100, 700)},
	})
}

// TestPlanMobile tests the single column layout
func TestPlanMobile(t *testing.T) {
	s := NewSession()
	s.Mobile = true
	s.Layout[MobileHeader] = model.NewRect(0, 0, 200, 80)
	s.Layout[MobileColumn] = model.NewRect(10, 50, 190, 700)
	s.Layout[MobileFooter] = model.NewRect(0, 650, 200, 780)
	s.SkipPage(1)

	checkPlan(t, Plan(s, 3), []Region{
		{Key: MobileHeader, Page: 0, Rect: s.Layout[MobileHeader]},
		{Key: MobileColumn, Page: 0, Rect: model.NewRect(10, 80, 190, 700)},
		{Key: MobileColumn, Page: 1, Rect: model.NewRect(10, 50, 190, 650)},
		{Key: MobileColumn, Page: 2, Rect: s.Layout[MobileColumn]},
		{Key: MobileFooter, Page: 2, Rect: s.Layout[MobileFooter]},
	})
}

// TestPlanEmpty tests a document without pages
func TestPlanEmpty(t *testing.T) {
	if got := Plan(regularSession(), 0); got != nil {
		t.Errorf("expected no regions, got %v", got)
	}
}
