package main

import (
	"deepl-desktop/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

func main() {
	a := app.NewWithID("com.deepl-desktop.app")
	a.Settings().SetTheme(&ui.AppTheme{})

	w := a.NewWindow("DeepL Translator")
	w.Resize(fyne.NewSize(1000, 700))

	mainUI := ui.NewMainUI(w)
	w.SetContent(mainUI.Build())

	w.ShowAndRun()
}
