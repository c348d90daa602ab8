package views

import (
	"hwmonitor/internal/simulator"
	"hwmonitor/ui/tui/state"
)

func RenderMenu(width, height, cursor int, animCursor float64, mouseX, mouseY int) string {
	v := MenuView{}
	return v.Render(state.AppState{}, ViewProps{
		Width:      width,
		Height:     height,
		MenuCursor: cursor,
		AnimCursor: animCursor,
		MouseX:     mouseX,
		MouseY:     mouseY,
	})
}

func RenderDashboard(s state.AppState, spinnerView string) string {
	v := DashboardView{}
	return v.Render(s, ViewProps{
		SpinnerView: spinnerView,
	})
}

func RenderConsole(s state.AppState, content string, width, height, scrollY int) string {
	v := ConsoleView{Content: content}
	return v.Render(s, ViewProps{
		Width:   width,
		Height:  height,
		ScrollY: scrollY,
	})
}

func RenderDetail(s state.AppState, title string, kinds []simulator.Kind, spinnerView string, charts []string, width, height int) string {
	v := DetailView{Title: title, Kinds: kinds}
	return v.Render(s, ViewProps{
		Width:       width,
		Height:      height,
		SpinnerView: spinnerView,
		ChartViews:  charts,
	})
}
