package tray

import "fyne.io/fyne/v2"

// iconSVG is a dashed selection rectangle with a camera shutter in the corner.
const iconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16" width="16" height="16">
  <rect x="1.5" y="1.5" width="10" height="8" fill="none" stroke="#0078d4" stroke-width="1.5" stroke-dasharray="2,1"/>
  <circle cx="11.5" cy="11.5" r="3.5" fill="#333333"/>
  <circle cx="11.5" cy="11.5" r="1.5" fill="none" stroke="#ffffff" stroke-width="0.8"/>
</svg>`

// Icon is the tray and notification icon.
var Icon = fyne.NewStaticResource("regionshot.svg", []byte(iconSVG))
