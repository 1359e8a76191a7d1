package tagscript

// Default returns an interpreter with the standard block catalogue. Order
// matters: the loose variable getter accepts every verb, so blocks after it
// are only consulted for declarations that name no variable.
func Default() *Interpreter {
	return New(
		RandomBlock{},
		RangeBlock{},
		IfBlock{},
		AllBlock{},
		AssignmentBlock{},
		SubstringBlock{},
		EmbedBlock{},
		StrfBlock{},
		LooseVariableGetterBlock{},
		FiftyFiftyBlock{},
		InBlock{},
		AnyBlock{},
		BreakBlock{},
		StopBlock{},
		MathBlock{},
		ReplaceBlock{},
		URLEncodeBlock{},
	)
}
