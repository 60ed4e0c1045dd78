package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Comments and scanner
	ComLineComment       Code = 1001
	ComUnterminatedBlock Code = 1002

	// Legacy standard (C89)
	LegacyKeyword         Code = 2001
	LegacyForDeclaration  Code = 2002
	LegacyDesignatedInit  Code = 2003
	LegacyCompoundLiteral Code = 2004
	LegacyVariadicMacro   Code = 2005
	LegacyFlexibleArray   Code = 2006
	LegacyStdlibFunction  Code = 2007
	LegacyHeader          Code = 2008
	LegacyDeclAfterStmt   Code = 2009

	// Modern standard (C99), informational
	ModernKeyword         Code = 3001
	ModernFeature         Code = 3002
	ModernDesignatedInit  Code = 3003
	ModernCompoundLiteral Code = 3004
	ModernVariadicMacro   Code = 3005
	ModernFlexibleArray   Code = 3006
	ModernStdlibFunction  Code = 3007
	ModernHeader          Code = 3008

	// Compiler compatibility
	VendorNDKReserved Code = 4001
	VendorSASC        Code = 4002
	VendorVBCC        Code = 4003
	VendorDICE        Code = 4004

	// Platform conventions
	PlatformType        Code = 5001
	PlatformDeprecated  Code = 5002
	PlatformPascalCase  Code = 5003
	PlatformNullPointer Code = 5004
	PlatformPrimitive   Code = 5005

	MemUnsafeFunction Code = 6001

	StyleMagicNumber Code = 7001
	StyleLineLength  Code = 7002

	PairUsage        Code = 8001
	PairNestedEnter  Code = 8002
	PairUnmatchedOut Code = 8003
	PairSpan         Code = 8004
	PairCountDiffers Code = 8005
	PairActiveAtEOF  Code = 8006

	MarkerComment Code = 9001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		ComLineComment:        "line comment in legacy standard",
		ComUnterminatedBlock:  "unterminated block comment",
		LegacyKeyword:         "keyword not available in C89",
		LegacyForDeclaration:  "declaration in for initializer",
		LegacyDesignatedInit:  "designated initializer",
		LegacyCompoundLiteral: "compound literal",
		LegacyVariadicMacro:   "variadic macro",
		LegacyFlexibleArray:   "flexible array member",
		LegacyStdlibFunction:  "C99 library function",
		LegacyHeader:          "C99 header",
		LegacyDeclAfterStmt:   "declaration after statement",
		ModernKeyword:         "C99 keyword",
		ModernFeature:         "C99 feature",
		ModernDesignatedInit:  "C99 designated initializer",
		ModernCompoundLiteral: "C99 compound literal",
		ModernVariadicMacro:   "C99 variadic macro",
		ModernFlexibleArray:   "C99 flexible array member",
		ModernStdlibFunction:  "C99 library function",
		ModernHeader:          "C99 header",
		VendorNDKReserved:     "NDK reserved word",
		VendorSASC:            "SAS/C incompatible keyword",
		VendorVBCC:            "VBCC incompatible keyword",
		VendorDICE:            "DICE incompatible keyword",
		PlatformType:          "prefer platform type",
		PlatformDeprecated:    "deprecated platform type",
		PlatformPascalCase:    "function name not PascalCase",
		PlatformNullPointer:   "0 assigned to pointer",
		PlatformPrimitive:     "prefer platform primitive type",
		MemUnsafeFunction:     "memory-unsafe function",
		StyleMagicNumber:      "magic number",
		StyleLineLength:       "line too long",
		PairUsage:             "critical section opened",
		PairNestedEnter:       "critical section opened twice",
		PairUnmatchedOut:      "critical section closed without opening",
		PairSpan:              "critical section too long",
		PairCountDiffers:      "unbalanced critical section calls",
		PairActiveAtEOF:       "critical section open at end of file",
		MarkerComment:         "expectation marker",
	}

	codeCategory = map[Code]Category{
		ComLineComment:        CatSyntax,
		ComUnterminatedBlock:  CatWarning,
		LegacyKeyword:         CatSyntax,
		LegacyForDeclaration:  CatSyntax,
		LegacyDesignatedInit:  CatSyntax,
		LegacyCompoundLiteral: CatSyntax,
		LegacyVariadicMacro:   CatSyntax,
		LegacyFlexibleArray:   CatSyntax,
		LegacyStdlibFunction:  CatSyntax,
		LegacyHeader:          CatSyntax,
		LegacyDeclAfterStmt:   CatSyntax,
		VendorNDKReserved:     CatCompiler,
		VendorSASC:            CatCompiler,
		VendorVBCC:            CatCompiler,
		VendorDICE:            CatCompiler,
		PlatformNullPointer:   CatStyle,
		PlatformPrimitive:     CatStyle,
		StyleMagicNumber:      CatStyle,
		StyleLineLength:       CatStyle,
		MarkerComment:         CatComment,
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("COM%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("C89%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("C99%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CMP%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("AMI%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("MEM%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("STY%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("PAR%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("MRK%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// Category returns the report category of the code; anything unlisted is a Warning.
func (c Code) Category() Category {
	if cat, ok := codeCategory[c]; ok {
		return cat
	}
	return CatWarning
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Codes returns every known code in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		if c != UnknownCode {
			out = append(out, c)
		}
	}
	sortCodes(out)
	return out
}
