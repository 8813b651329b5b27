//go:build js && wasm

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"syscall/js"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/script"
)

func main() {
	monet := js.Global().Get("Object").New()

	monet.Set("render", js.FuncOf(render))
	monet.Set("stream", js.FuncOf(stream))
	monet.Set("sample", js.FuncOf(sample))
	monet.Set("samples", js.FuncOf(samples))
	monet.Set("version", js.ValueOf(canvas.Version))

	js.Global().Set("monet", monet)

	// Signal that WASM is ready
	js.Global().Set("monetWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(err error) any {
	return js.ValueOf(map[string]any{"error": err.Error()})
}

func svgResult(svg string) any {
	return js.ValueOf(map[string]any{"svg": svg})
}

// render(scriptJSON, unit?) returns {svg} or {error}.
func render(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing script JSON"})
	}
	doc, err := script.Parse(strings.NewReader(args[0].String()))
	if err != nil {
		return errorResult(err)
	}

	var buf bytes.Buffer
	if err := script.Render(&buf, doc, unitOption(args, 1)...); err != nil {
		return errorResult(err)
	}
	return svgResult(buf.String())
}

// callbackWriter hands every canvas write to a JS function.
type callbackWriter struct {
	fn js.Value
}

func (w callbackWriter) Write(p []byte) (int, error) {
	w.fn.Invoke(string(p))
	return len(p), nil
}

// stream(scriptJSON, onFragment, unit?) calls onFragment with each piece of
// the document as it is written and returns {ok} or {error}.
func stream(this js.Value, args []js.Value) any {
	if len(args) < 2 || args[1].Type() != js.TypeFunction {
		return js.ValueOf(map[string]any{"error": "usage: stream(scriptJSON, onFragment)"})
	}
	doc, err := script.Parse(strings.NewReader(args[0].String()))
	if err != nil {
		return errorResult(err)
	}

	if err := script.Render(callbackWriter{args[1]}, doc, unitOption(args, 2)...); err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]any{"ok": true})
}

// sample(name, unit?) returns {svg, script} or {error}.
func sample(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing sample name"})
	}
	doc, err := script.Sample(args[0].String())
	if err != nil {
		return errorResult(err)
	}

	var buf bytes.Buffer
	if err := script.Render(&buf, doc, unitOption(args, 1)...); err != nil {
		return errorResult(err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]any{"svg": buf.String(), "script": string(data)})
}

func samples(this js.Value, args []js.Value) any {
	names := script.SampleNames()
	out := make([]any, len(names))
	for i, name := range names {
		out[i] = name
	}
	return js.ValueOf(out)
}

func unitOption(args []js.Value, i int) []canvas.Option {
	if len(args) > i && args[i].Type() == js.TypeString {
		return []canvas.Option{canvas.WithUnit(args[i].String())}
	}
	return nil
}
