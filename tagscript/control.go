package tagscript

// IfBlock selects between the two &&- or ||-delimited partitions of its
// payload by a comparison in its parameter:
//
//	{if(1==1):yes&&no}
//
// With no delimiter in the payload, a true condition emits the whole payload
// and a false one emits nothing.
type IfBlock struct{}

func (IfBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, true, true) && accepts(ctx.Verb, "if")
}

func (IfBlock) Process(ctx *Context) (string, bool, error) {
	v, ok := parseIf(ctx.Response, ctx.Verb.Parameter)
	out, ok := pickOutput(ctx.Verb.Payload, v, ok)
	return out, ok, nil
}

// AllBlock emits its payload's first partition only when every condition in
// its parameter holds. Conditions are delimited like the payload:
//
//	{all({score}>=100&&{score}<=1000):in range&&out of range}
type AllBlock struct{}

func (AllBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, true, true) && accepts(ctx.Verb, "all", "and")
}

func (AllBlock) Process(ctx *Context) (string, bool, error) {
	result := true
	for _, v := range parseListIf(ctx.Response, ctx.Verb.Parameter) {
		result = result && v
	}
	out, ok := pickOutput(ctx.Verb.Payload, result, true)
	return out, ok, nil
}

// AnyBlock emits its payload's first partition when at least one condition
// in its parameter holds.
type AnyBlock struct{}

func (AnyBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, true, true) && accepts(ctx.Verb, "any", "or")
}

func (AnyBlock) Process(ctx *Context) (string, bool, error) {
	result := false
	for _, v := range parseListIf(ctx.Response, ctx.Verb.Parameter) {
		result = result || v
	}
	out, ok := pickOutput(ctx.Verb.Payload, result, true)
	return out, ok, nil
}
