package editor

import "fmt"

// Every selector the remote editor is known to expose lives here. The editor's
// DOM is not under our control; anything outside this file must go through
// these affordances only.
const (
	// selLandmark is the "Import/Save" tab header, used as the navigation
	// landmark that proves the creator page finished loading.
	selLandmark = `h3.selectable.readable-background[onclick*="toggleCreatorTabs"][onclick*="import"]`

	// Import panel.
	selFrameTemplate   = `#autoFrame`
	selImportAllPrints = `#importAllPrints`
	selImportName      = `#import-name`
	selImportIndex     = `#import-index`

	// Frame panel.
	selFrameGroup = `#selectFrameGroup`
	selAddToFull  = `#addToFull`

	// Art panel.
	selArtUpload = `input[type="file"][accept*=".png"][data-dropfunction="uploadArt"]`

	// Set symbol panel.
	selSetSymbolClear = `#creator-menu-setSymbol > div:nth-child(3) > button`

	// Export.
	selDownload = `h3.download[onclick*="downloadCard"]`
)

// tabSelector returns the clickable header for a creator tab ("import",
// "frame", "art", "setSymbol").
func tabSelector(tab string) string {
	return fmt.Sprintf(`h3.selectable.readable-background[onclick*="toggleCreatorTabs"][onclick*="%s"]`, tab)
}

// jsOptionTexts and jsOptionValues read the printing dropdown contents.
const (
	jsOptionTexts  = `Array.from(document.querySelectorAll('#import-index option')).map(o => o.textContent.trim())`
	jsOptionValues = `Array.from(document.querySelectorAll('#import-index option')).map(o => o.value)`
	jsClearOptions = `document.querySelectorAll('#import-index option').forEach(o => o.remove())`
	jsOptionsReady = `document.querySelectorAll('#import-index option').length > 1`

	jsAllPrintsChecked = `document.querySelector('#importAllPrints')?.checked === true`
	jsToggleAllPrints  = `document.querySelector('#importAllPrints').parentElement.click()`

	jsHasArtUpload      = `document.querySelector('input[type="file"][accept*=".png"][data-dropfunction="uploadArt"]') !== null`
	jsHasSetSymbolClear = `document.querySelector('#creator-menu-setSymbol > div:nth-child(3) > button') !== null`
)
