//go:build js && wasm

package main

import (
	"syscall/js"

	br "bayerrgb/pkg/bayerrgb"
)

func main() {
	js.Global().Set("demosaicFITS", js.FuncOf(demosaicFITS))
	select {} // block forever
}

// demosaicFITS(fileBytes, pattern?) -> {width, height, pattern, rgba, stats} | {error}
func demosaicFITS(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("usage: demosaicFITS(fileBytes, pattern)")
	}

	jsBytes := args[0]
	fileBytes := make([]byte, jsBytes.Get("length").Int())
	js.CopyBytesToGo(fileBytes, jsBytes)

	frame, err := br.ReadFITSBytes(fileBytes)
	if err != nil {
		return errorResult("FITS parse error: " + err.Error())
	}

	pattern, ok := frame.Metadata.BayerPattern()
	if len(args) >= 2 && args[1].Type() == js.TypeString && args[1].String() != "" {
		p, perr := br.ParsePattern(args[1].String())
		if perr != nil {
			return errorResult(perr.Error())
		}
		pattern, ok = p, true
	}
	if !ok {
		return errorResult("no usable BAYERPAT card; pass a pattern name")
	}

	img, err := br.Demosaic(frame.NormalizedGrid(), pattern)
	if err != nil {
		return errorResult("demosaic error: " + err.Error())
	}

	rgba := br.ToRGBA(img)
	buf := js.Global().Get("Uint8ClampedArray").New(len(rgba.Pix))
	js.CopyBytesToJS(buf, rgba.Pix)

	return map[string]interface{}{
		"width":   img.Width,
		"height":  img.Height,
		"pattern": pattern.String(),
		"rgba":    buf,
		"stats": map[string]interface{}{
			"r": statsMap(br.ChannelStats(img, br.ChannelRed)),
			"g": statsMap(br.ChannelStats(img, br.ChannelGreen)),
			"b": statsMap(br.ChannelStats(img, br.ChannelBlue)),
		},
	}
}

func statsMap(s br.ChannelStatistics) map[string]interface{} {
	return map[string]interface{}{
		"mean":   s.Mean,
		"stddev": s.StdDev,
		"min":    s.Min,
		"max":    s.Max,
	}
}

func errorResult(msg string) map[string]interface{} {
	return map[string]interface{}{"error": msg}
}
