package contract

import "github.com/alexanderramin/etude/internal/app"

type StatusView = app.StatusView

type BPMView = app.BPMView

type RaiseBPMResponse = app.RaiseBPMResponse

type FocusRequest = app.FocusRequest

type FocusResponse = app.FocusResponse

type GradesResponse = app.GradesResponse

type ClearFamilyResponse = app.ClearFamilyResponse
