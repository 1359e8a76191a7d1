package tagscript

// StopBlock halts the whole evaluation when its parameter condition holds,
// discarding all output after the block's position. The payload, if any,
// becomes the rest of the body:
//
//	{stop({args}==):You must provide arguments for this tag.}
type StopBlock struct{}

func (StopBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, true, false) && accepts(ctx.Verb, "stop", "halt", "error")
}

func (StopBlock) Process(ctx *Context) (string, bool, error) {
	if v, ok := parseIf(ctx.Response, ctx.Verb.Parameter); ok && v {
		return "", false, &Stop{Text: ctx.Verb.Payload}
	}
	return "", true, nil
}

// BreakBlock overrides the response body when its parameter condition
// holds. Evaluation of remaining blocks continues for their side effects,
// but their text output is discarded in favor of the payload:
//
//	{break({args}==):no arguments}
type BreakBlock struct{}

func (BreakBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, true, false) && accepts(ctx.Verb, "break", "short", "shortcircuit")
}

func (BreakBlock) Process(ctx *Context) (string, bool, error) {
	if v, ok := parseIf(ctx.Response, ctx.Verb.Parameter); ok && v {
		ctx.Response.Override(ctx.Verb.Payload)
	}
	return "", true, nil
}
