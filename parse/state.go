package parse

// State identifies one parser state. The driver dispatches on the top
// stack frame's state; each handler pops its own frame (loop states
// keep theirs until the loop ends), appends the nodes it completes, and
// pushes zero or more successor frames.
type State uint8

const (
	StateFileScopeDeclarationLoop State = iota
	StateTypeScopeDeclarationLoop
	StateDeclaration
	StateDeclarationName
	StatePackageDirective
	StateImportDirective
	StateNamespaceFinish

	StateFunctionSignature
	StateFunctionSignatureAfterDeduced
	StateFunctionAfterParameters
	StateFunctionReturnType
	StateFunctionSignatureFinish
	StateFunctionDefinitionFinish
	StateParameterFinish
	StateParameterListFinish

	StatePattern
	StatePatternBindingFinish
	StateTemplatePatternFinish
	StateAddressPatternFinish

	StateVariableAfterPattern
	StateVariableFinish
	StateLetAfterPattern
	StateLetFinish

	StateClassAfterName
	StateClassDefinitionFinish
	StateInterfaceAfterName
	StateInterfaceDefinitionFinish
	StateNamedConstraintAfterName
	StateNamedConstraintDefinitionFinish

	StateStatement
	StateStatementScopeLoop
	StateExpressionStatementFinish
	StateCodeBlock
	StateCodeBlockFinish
	StateParenConditionAsIf
	StateParenConditionAsWhile
	StateParenConditionAsMatch
	StateParenConditionFinishAsIf
	StateParenConditionFinishAsWhile
	StateParenConditionFinishAsMatch
	StateIfStatementFinishThen
	StateIfStatementFinishElse
	StateWhileStatementFinish
	StateReturnStatementFinish
	StateBreakStatementFinish
	StateContinueStatementFinish
	StateMatchCases
	StateMatchCaseLoop
	StateMatchCaseAfterPattern
	StateMatchCaseFinish
	StateMatchDefaultFinish
	StateMatchCasesFinish
	StateMatchStatementFinish

	StateExpression
	StateExpressionInPostfix
	StateExpressionInPostfixLoop
	StateExpressionLoop
	StateExpressionLoopForBinary
	StateExpressionLoopForPrefix
	StateExpressionIfFinishCondition
	StateExpressionIfFinishThen
	StateExpressionIfFinish

	StateParenExpressionParameterFinish
	StateParenExpressionFinish
	StateBraceExpressionField
	StateStructFieldFinish
	StateBraceExpressionParameterFinish
	StateBraceExpressionFinish
	StateCallExpressionParameterFinish
	StateCallExpressionFinish
	StateIndexExpressionFinish
	StateArrayExpressionSemi
	StateArrayExpressionFinish

	numStates
)

var stateNames = [numStates]string{
	StateFileScopeDeclarationLoop:        "FileScopeDeclarationLoop",
	StateTypeScopeDeclarationLoop:        "TypeScopeDeclarationLoop",
	StateDeclaration:                     "Declaration",
	StateDeclarationName:                 "DeclarationName",
	StatePackageDirective:                "PackageDirective",
	StateImportDirective:                 "ImportDirective",
	StateNamespaceFinish:                 "NamespaceFinish",
	StateFunctionSignature:               "FunctionSignature",
	StateFunctionSignatureAfterDeduced:   "FunctionSignatureAfterDeduced",
	StateFunctionAfterParameters:         "FunctionAfterParameters",
	StateFunctionReturnType:              "FunctionReturnType",
	StateFunctionSignatureFinish:         "FunctionSignatureFinish",
	StateFunctionDefinitionFinish:        "FunctionDefinitionFinish",
	StateParameterFinish:                 "ParameterFinish",
	StateParameterListFinish:             "ParameterListFinish",
	StatePattern:                         "Pattern",
	StatePatternBindingFinish:            "PatternBindingFinish",
	StateTemplatePatternFinish:           "TemplatePatternFinish",
	StateAddressPatternFinish:            "AddressPatternFinish",
	StateVariableAfterPattern:            "VariableAfterPattern",
	StateVariableFinish:                  "VariableFinish",
	StateLetAfterPattern:                 "LetAfterPattern",
	StateLetFinish:                       "LetFinish",
	StateClassAfterName:                  "ClassAfterName",
	StateClassDefinitionFinish:           "ClassDefinitionFinish",
	StateInterfaceAfterName:              "InterfaceAfterName",
	StateInterfaceDefinitionFinish:       "InterfaceDefinitionFinish",
	StateNamedConstraintAfterName:        "NamedConstraintAfterName",
	StateNamedConstraintDefinitionFinish: "NamedConstraintDefinitionFinish",
	StateStatement:                       "Statement",
	StateStatementScopeLoop:              "StatementScopeLoop",
	StateExpressionStatementFinish:       "ExpressionStatementFinish",
	StateCodeBlock:                       "CodeBlock",
	StateCodeBlockFinish:                 "CodeBlockFinish",
	StateParenConditionAsIf:              "ParenConditionAsIf",
	StateParenConditionAsWhile:           "ParenConditionAsWhile",
	StateParenConditionAsMatch:           "ParenConditionAsMatch",
	StateParenConditionFinishAsIf:        "ParenConditionFinishAsIf",
	StateParenConditionFinishAsWhile:     "ParenConditionFinishAsWhile",
	StateParenConditionFinishAsMatch:     "ParenConditionFinishAsMatch",
	StateIfStatementFinishThen:           "IfStatementFinishThen",
	StateIfStatementFinishElse:           "IfStatementFinishElse",
	StateWhileStatementFinish:            "WhileStatementFinish",
	StateReturnStatementFinish:           "ReturnStatementFinish",
	StateBreakStatementFinish:            "BreakStatementFinish",
	StateContinueStatementFinish:         "ContinueStatementFinish",
	StateMatchCases:                      "MatchCases",
	StateMatchCaseLoop:                   "MatchCaseLoop",
	StateMatchCaseAfterPattern:           "MatchCaseAfterPattern",
	StateMatchCaseFinish:                 "MatchCaseFinish",
	StateMatchDefaultFinish:              "MatchDefaultFinish",
	StateMatchCasesFinish:                "MatchCasesFinish",
	StateMatchStatementFinish:            "MatchStatementFinish",
	StateExpression:                      "Expression",
	StateExpressionInPostfix:             "ExpressionInPostfix",
	StateExpressionInPostfixLoop:         "ExpressionInPostfixLoop",
	StateExpressionLoop:                  "ExpressionLoop",
	StateExpressionLoopForBinary:         "ExpressionLoopForBinary",
	StateExpressionLoopForPrefix:         "ExpressionLoopForPrefix",
	StateExpressionIfFinishCondition:     "ExpressionIfFinishCondition",
	StateExpressionIfFinishThen:          "ExpressionIfFinishThen",
	StateExpressionIfFinish:              "ExpressionIfFinish",
	StateParenExpressionParameterFinish:  "ParenExpressionParameterFinish",
	StateParenExpressionFinish:           "ParenExpressionFinish",
	StateBraceExpressionField:            "BraceExpressionField",
	StateStructFieldFinish:               "StructFieldFinish",
	StateBraceExpressionParameterFinish:  "BraceExpressionParameterFinish",
	StateBraceExpressionFinish:           "BraceExpressionFinish",
	StateCallExpressionParameterFinish:   "CallExpressionParameterFinish",
	StateCallExpressionFinish:            "CallExpressionFinish",
	StateIndexExpressionFinish:           "IndexExpressionFinish",
	StateArrayExpressionSemi:             "ArrayExpressionSemi",
	StateArrayExpressionFinish:           "ArrayExpressionFinish",
}

func (s State) String() string { return stateNames[s] }

// stateHandlers dispatches a popped frame to its handler.
var stateHandlers = [numStates]func(*Context){
	StateFileScopeDeclarationLoop:        handleFileScopeDeclarationLoop,
	StateTypeScopeDeclarationLoop:        handleTypeScopeDeclarationLoop,
	StateDeclaration:                     handleDeclaration,
	StateDeclarationName:                 handleDeclarationName,
	StatePackageDirective:                handlePackageDirective,
	StateImportDirective:                 handleImportDirective,
	StateNamespaceFinish:                 handleNamespaceFinish,
	StateFunctionSignature:               handleFunctionSignature,
	StateFunctionSignatureAfterDeduced:   handleFunctionSignatureAfterDeduced,
	StateFunctionAfterParameters:         handleFunctionAfterParameters,
	StateFunctionReturnType:              handleFunctionReturnType,
	StateFunctionSignatureFinish:         handleFunctionSignatureFinish,
	StateFunctionDefinitionFinish:        handleFunctionDefinitionFinish,
	StateParameterFinish:                 handleParameterFinish,
	StateParameterListFinish:             handleParameterListFinish,
	StatePattern:                         handlePattern,
	StatePatternBindingFinish:            handlePatternBindingFinish,
	StateTemplatePatternFinish:           handleTemplatePatternFinish,
	StateAddressPatternFinish:            handleAddressPatternFinish,
	StateVariableAfterPattern:            handleVariableAfterPattern,
	StateVariableFinish:                  handleVariableFinish,
	StateLetAfterPattern:                 handleLetAfterPattern,
	StateLetFinish:                       handleLetFinish,
	StateClassAfterName:                  handleClassAfterName,
	StateClassDefinitionFinish:           handleClassDefinitionFinish,
	StateInterfaceAfterName:              handleInterfaceAfterName,
	StateInterfaceDefinitionFinish:       handleInterfaceDefinitionFinish,
	StateNamedConstraintAfterName:        handleNamedConstraintAfterName,
	StateNamedConstraintDefinitionFinish: handleNamedConstraintDefinitionFinish,
	StateStatement:                       handleStatement,
	StateStatementScopeLoop:              handleStatementScopeLoop,
	StateExpressionStatementFinish:       handleExpressionStatementFinish,
	StateCodeBlock:                       handleCodeBlock,
	StateCodeBlockFinish:                 handleCodeBlockFinish,
	StateParenConditionAsIf:              handleParenConditionAsIf,
	StateParenConditionAsWhile:           handleParenConditionAsWhile,
	StateParenConditionAsMatch:           handleParenConditionAsMatch,
	StateParenConditionFinishAsIf:        handleParenConditionFinishAsIf,
	StateParenConditionFinishAsWhile:     handleParenConditionFinishAsWhile,
	StateParenConditionFinishAsMatch:     handleParenConditionFinishAsMatch,
	StateIfStatementFinishThen:           handleIfStatementFinishThen,
	StateIfStatementFinishElse:           handleIfStatementFinishElse,
	StateWhileStatementFinish:            handleWhileStatementFinish,
	StateReturnStatementFinish:           handleReturnStatementFinish,
	StateBreakStatementFinish:            handleBreakStatementFinish,
	StateContinueStatementFinish:         handleContinueStatementFinish,
	StateMatchCases:                      handleMatchCases,
	StateMatchCaseLoop:                   handleMatchCaseLoop,
	StateMatchCaseAfterPattern:           handleMatchCaseAfterPattern,
	StateMatchCaseFinish:                 handleMatchCaseFinish,
	StateMatchDefaultFinish:              handleMatchDefaultFinish,
	StateMatchCasesFinish:                handleMatchCasesFinish,
	StateMatchStatementFinish:            handleMatchStatementFinish,
	StateExpression:                      handleExpression,
	StateExpressionInPostfix:             handleExpressionInPostfix,
	StateExpressionInPostfixLoop:         handleExpressionInPostfixLoop,
	StateExpressionLoop:                  handleExpressionLoop,
	StateExpressionLoopForBinary:         handleExpressionLoopForBinary,
	StateExpressionLoopForPrefix:         handleExpressionLoopForPrefix,
	StateExpressionIfFinishCondition:     handleExpressionIfFinishCondition,
	StateExpressionIfFinishThen:          handleExpressionIfFinishThen,
	StateExpressionIfFinish:              handleExpressionIfFinish,
	StateParenExpressionParameterFinish:  handleParenExpressionParameterFinish,
	StateParenExpressionFinish:           handleParenExpressionFinish,
	StateBraceExpressionField:            handleBraceExpressionField,
	StateStructFieldFinish:               handleStructFieldFinish,
	StateBraceExpressionParameterFinish:  handleBraceExpressionParameterFinish,
	StateBraceExpressionFinish:           handleBraceExpressionFinish,
	StateCallExpressionParameterFinish:   handleCallExpressionParameterFinish,
	StateCallExpressionFinish:            handleCallExpressionFinish,
	StateIndexExpressionFinish:           handleIndexExpressionFinish,
	StateArrayExpressionSemi:             handleArrayExpressionSemi,
	StateArrayExpressionFinish:           handleArrayExpressionFinish,
}
