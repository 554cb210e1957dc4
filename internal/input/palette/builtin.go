package palette

// Builtin returns a palette holding the standard entries.
func Builtin() *Palette {
	p := New()
	if err := p.RegisterAll(BuiltinEntries()); err != nil {
		panic("palette: invalid builtin entry: " + err.Error())
	}
	return p
}

// BuiltinEntries returns fresh copies of the standard entries.
func BuiltinEntries() []*Entry {
	var entries []*Entry
	entries = append(entries, templateEntries()...)
	entries = append(entries, matrixEntries()...)
	entries = append(entries, symbolEntries()...)
	return entries
}

func templateEntries() []*Entry {
	return []*Entry{
		// Fractions and roots
		template("frac", "Fraction", CategoryFraction, 2, `\frac{#1}{#2}`),
		template("dfrac", "Display fraction", CategoryFraction, 2, `\dfrac{#1}{#2}`),
		template("binom", "Binomial coefficient", CategoryFraction, 2, `\binom{#1}{#2}`),
		template("sqrt", "Square root", CategoryFraction, 1, `\sqrt{#1}`),
		template("nthroot", "Nth root", CategoryFraction, 2, `\sqrt[#1]{#2}`),

		// Scripts
		template("pow", "Power", CategoryScript, 2, `{#1}^{#2}`),
		template("sub", "Subscript", CategoryScript, 2, `{#1}_{#2}`),
		template("subsup", "Subscript and superscript", CategoryScript, 3, `{#1}_{#2}^{#3}`),
		template("sup", "Superscript", CategoryScript, 1, `^{#1}`),
		template("lower", "Trailing subscript", CategoryScript, 1, `_{#1}`),

		// Brackets
		template("paren", "Parentheses", CategoryBracket, 1, `\left(#1\right)`),
		template("bracket", "Square brackets", CategoryBracket, 1, `\left[#1\right]`),
		template("brace", "Curly braces", CategoryBracket, 1, `\left\{#1\right\}`),
		template("abs", "Absolute value", CategoryBracket, 1, `\left|#1\right|`),
		template("norm", "Norm", CategoryBracket, 1, `\left\|#1\right\|`),
		template("angle", "Angle brackets", CategoryBracket, 1, `\left\langle #1\right\rangle`),
		template("floor", "Floor", CategoryBracket, 1, `\left\lfloor #1\right\rfloor`),
		template("ceil", "Ceiling", CategoryBracket, 1, `\left\lceil #1\right\rceil`),

		// Accents and styles
		template("overline", "Overline", CategoryAccent, 1, `\overline{#1}`),
		template("underline", "Underline", CategoryAccent, 1, `\underline{#1}`),
		template("hat", "Hat", CategoryAccent, 1, `\hat{#1}`),
		template("vec", "Vector arrow", CategoryAccent, 1, `\vec{#1}`),
		template("dot", "Dot accent", CategoryAccent, 1, `\dot{#1}`),
		template("tilde", "Wide tilde", CategoryAccent, 1, `\widetilde{#1}`),
		template("overrightarrow", "Over right arrow", CategoryAccent, 1, `\overrightarrow{#1}`),
		template("overset", "Overset", CategoryAccent, 2, `\overset{#1}{#2}`),
		template("underset", "Underset", CategoryAccent, 2, `\underset{#1}{#2}`),
		template("mathbf", "Bold", CategoryStyle, 1, `\mathbf{#1}`),
		template("text", "Text", CategoryStyle, 1, `\text{#1}`),

		// Labelled arrows
		template("xrightarrow", "Labelled right arrow", CategoryDecorated, 2, `\xrightarrow[#2]{#1}`),
		template("xleftarrow", "Labelled left arrow", CategoryDecorated, 2, `\xleftarrow[#2]{#1}`),

		// Functions
		template("sin", "Sine", CategoryFunction, 1, `\sin\left(#1\right)`),
		template("cos", "Cosine", CategoryFunction, 1, `\cos\left(#1\right)`),
		template("tan", "Tangent", CategoryFunction, 1, `\tan\left(#1\right)`),
		template("ln", "Natural logarithm", CategoryFunction, 1, `\ln\left(#1\right)`),
		template("exp", "Exponential", CategoryFunction, 1, `\exp\left(#1\right)`),
		template("log", "Logarithm with base", CategoryFunction, 2, `\log_{#1}\left(#2\right)`),

		// Big operators
		template("lim", "Limit", CategoryBigOp, 3, `\lim_{#1\to #2}#3`),
		template("sum", "Summation", CategoryBigOp, 3, `\sum_{#1}^{#2}#3`),
		template("prod", "Product", CategoryBigOp, 3, `\prod_{#1}^{#2}#3`),
		template("int", "Definite integral", CategoryBigOp, 3, `\int_{#1}^{#2}#3`),
		template("bigcup", "Union", CategoryBigOp, 3, `\bigcup_{#1}^{#2}#3`),
		template("bigcap", "Intersection", CategoryBigOp, 3, `\bigcap_{#1}^{#2}#3`),
	}
}

func matrixEntries() []*Entry {
	return []*Entry{
		matrix("matrix", "Matrix 2x2", "matrix", 2, 2),
		matrix("matrix3", "Matrix 3x3", "matrix", 3, 3),
		matrix("pmatrix", "Parenthesized matrix 2x2", "pmatrix", 2, 2),
		matrix("bmatrix", "Bracketed matrix 2x2", "bmatrix", 2, 2),
		matrix("vmatrix", "Determinant 2x2", "vmatrix", 2, 2),
		matrix("vector", "Column vector", "pmatrix", 2, 1),
		matrix("cases", "Cases", "cases", 2, 2),
	}
}

func symbolEntries() []*Entry {
	entries := []*Entry{
		// Operators
		symbol("times", "Multiplication", CategoryOperator, `\times`),
		symbol("div", "Division", CategoryOperator, `\div`),
		symbol("cdot", "Centered dot", CategoryOperator, `\cdot`),
		symbol("pm", "Plus or minus", CategoryOperator, `\pm`),
		symbol("mp", "Minus or plus", CategoryOperator, `\mp`),
		symbol("cup", "Set union", CategoryOperator, `\cup`),
		symbol("cap", "Set intersection", CategoryOperator, `\cap`),
		symbol("setminus", "Set difference", CategoryOperator, `\setminus`),
		symbol("circ", "Composition", CategoryOperator, `\circ`),
		symbol("nabla", "Nabla", CategoryOperator, `\nabla`),
		symbol("partial", "Partial derivative", CategoryOperator, `\partial`),

		// Relations
		symbol("le", "Less than or equal", CategoryRelation, `\le`),
		symbol("ge", "Greater than or equal", CategoryRelation, `\ge`),
		symbol("ne", "Not equal", CategoryRelation, `\ne`),
		symbol("approx", "Approximately", CategoryRelation, `\approx`),
		symbol("equiv", "Equivalent", CategoryRelation, `\equiv`),
		symbol("sim", "Similar", CategoryRelation, `\sim`),
		symbol("propto", "Proportional", CategoryRelation, `\propto`),
		symbol("in", "Element of", CategoryRelation, `\in`),
		symbol("notin", "Not an element of", CategoryRelation, `\notin`),
		symbol("subset", "Subset", CategoryRelation, `\subset`),
		symbol("subseteq", "Subset or equal", CategoryRelation, `\subseteq`),
		symbol("supset", "Superset", CategoryRelation, `\supset`),

		// Arrows
		symbol("to", "Right arrow", CategoryArrow, `\to`),
		symbol("gets", "Left arrow", CategoryArrow, `\gets`),
		symbol("implies", "Implies", CategoryArrow, `\Rightarrow`),
		symbol("iff", "If and only if", CategoryArrow, `\Leftrightarrow`),
		symbol("mapsto", "Maps to", CategoryArrow, `\mapsto`),

		// Miscellaneous
		symbol("infty", "Infinity", CategoryMisc, `\infty`),
		symbol("forall", "For all", CategoryMisc, `\forall`),
		symbol("exists", "There exists", CategoryMisc, `\exists`),
		symbol("emptyset", "Empty set", CategoryMisc, `\emptyset`),
		symbol("neg", "Negation", CategoryMisc, `\neg`),
		symbol("land", "Logical and", CategoryMisc, `\land`),
		symbol("lor", "Logical or", CategoryMisc, `\lor`),
		symbol("cdots", "Centered dots", CategoryMisc, `\cdots`),
		symbol("ldots", "Dots", CategoryMisc, `\ldots`),
		symbol("degree", "Degree", CategoryMisc, `^{\circ}`),
		symbol("reals", "Real numbers", CategoryMisc, `\mathbb{R}`),
		symbol("naturals", "Natural numbers", CategoryMisc, `\mathbb{N}`),
		symbol("integers", "Integers", CategoryMisc, `\mathbb{Z}`),
		symbol("lbrace", "Left brace", CategoryMisc, `\{`),
		symbol("rbrace", "Right brace", CategoryMisc, `\}`),
	}

	for _, g := range greekLetters {
		entries = append(entries, symbol(g, "Greek "+g, CategoryGreek, `\`+g))
	}
	return entries
}

// greekLetters are the Greek letter control words; each maps to \<name>.
var greekLetters = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "varepsilon", "zeta",
	"eta", "theta", "vartheta", "iota", "kappa", "lambda", "mu", "nu",
	"xi", "pi", "varpi", "rho", "sigma", "tau", "upsilon", "phi",
	"varphi", "chi", "psi", "omega",
	"Gamma", "Delta", "Theta", "Lambda", "Xi", "Pi", "Sigma", "Upsilon",
	"Phi", "Psi", "Omega",
}
