// Package io reads and writes chartnote documents.
//
// # Overview
//
// A document describes one annotated chart: the chart itself, the
// settings shared by all annotations and the annotation list. The same
// schema is accepted as JSON, YAML and TOML; the encoding is picked from
// the file extension by [ImportDocument] and [ExportDocument], or given
// explicitly to [ReadDocument] and [WriteDocument].
//
// # Format
//
//	theme: generic.dark
//	chart:
//	  width: 800
//	  height: 400
//	  panes: [{name: price}, {name: volume}]
//	  argumentAxis: {type: datetime}
//	  valueAxes:
//	    - {name: usd, pane: price}
//	    - {name: shares, pane: volume}
//	  series:
//	    - name: close
//	      axis: usd
//	      points:
//	        - {argument: 2024-01-02, value: 185.6}
//	        - {argument: 2024-03-28, value: 171.5}
//	commonAnnotationSettings:
//	  tooltipEnabled: true
//	  font: {size: 14}
//	annotations:
//	  - type: text
//	    name: earnings
//	    text: Q1
//	    argument: 2024-02-01
//	    series: close
//	    description: Earnings call
//
// # Top-level Fields
//
//   - theme: built-in theme name ("generic.light", "generic.dark")
//   - themeFile: YAML theme file relative to the document; wins over theme
//   - chart: panes, argument axis, value axes and series
//   - commonAnnotationSettings: options every annotation inherits
//   - annotations: the annotation list
//
// Unknown keys are rejected. Free-form "data" blocks of annotations are
// passed through untouched.
package io
