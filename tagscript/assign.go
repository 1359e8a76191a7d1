package tagscript

// AssignmentBlock binds a variable for the rest of the evaluation. The
// parameter names the variable and the payload is its value; later lookups
// in the same evaluation, including condition operands, see the binding:
//
//	{=(prefix):!}The prefix here is {prefix}.
type AssignmentBlock struct{}

func (AssignmentBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, false, true, false) && accepts(ctx.Verb, "=", "assign", "let", "var")
}

func (AssignmentBlock) Process(ctx *Context) (string, bool, error) {
	ctx.Response.Variables[ctx.Verb.Parameter] = ctx.Verb.Payload
	return "", true, nil
}
