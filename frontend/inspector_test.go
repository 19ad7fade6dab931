package frontend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conformd/cxxlint/frontend"
	"github.com/conformd/cxxlint/model"
)

func inspect(t *testing.T, src string) *model.SourceUnit {
	t.Helper()
	unit, err := frontend.NewInspector().InspectSource(context.Background(), []byte(src), "test.cpp")
	require.NoError(t, err)
	require.NotNil(t, unit)
	return unit
}

func TestInspectClass(t *testing.T) {
	unit := inspect(t, `
class UHealthComponent : public UActorComponent
{
public:
	bool bRegenerates;
	float RegenRate;
};
`)
	require.Len(t, unit.Classes, 1)
	class := unit.Classes[0]
	assert.Equal(t, "UHealthComponent", class.Name)
	assert.Equal(t, model.KindClass, class.Kind)
	assert.Equal(t, []string{"UActorComponent"}, class.Bases)
	require.Len(t, class.Fields, 2)
	assert.Equal(t, "bRegenerates", class.Fields[0].Name)
	assert.True(t, class.Fields[0].Type.IsBool())
	assert.Equal(t, "RegenRate", class.Fields[1].Name)
	assert.False(t, class.Fields[1].Type.IsBool())
}

func TestInspectForwardDeclarationIgnored(t *testing.T) {
	unit := inspect(t, "class UWidget;\n")
	assert.Empty(t, unit.Classes)
}

func TestInspectReflectionMarkers(t *testing.T) {
	unit := inspect(t, `
class UInventory : public UObject
{
	GENERATED_BODY();

public:
	UPROPERTY(EditAnywhere);
	UItem* FirstItem;

	UItem* SecondItem;
};
`)
	require.Len(t, unit.Classes, 1)
	class := unit.Classes[0]
	assert.True(t, class.Reflected)

	var first, second *model.Field
	for i := range class.Fields {
		switch class.Fields[i].Name {
		case "FirstItem":
			first = &class.Fields[i]
		case "SecondItem":
			second = &class.Fields[i]
		}
	}
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.True(t, first.Reflected)
	assert.True(t, first.Type.IsPointer)
	assert.False(t, second.Reflected)
}

func TestInspectFunctionParameters(t *testing.T) {
	unit := inspect(t, `
bool CheckBuffer(const FString& Config, FString& Result, bool bFast, bool bSafe)
{
	return true;
}
`)
	require.Len(t, unit.Funcs, 1)
	fn := unit.Funcs[0]
	assert.Equal(t, "CheckBuffer", fn.Name)
	assert.True(t, fn.Returns.IsBool())
	require.Len(t, fn.Params, 4)
	assert.True(t, fn.Params[0].Type.IsConst)
	assert.True(t, fn.Params[0].Type.IsReference)
	assert.False(t, fn.Params[1].Type.IsConst)
	assert.True(t, fn.Params[1].Type.IsReference)
	assert.True(t, fn.Params[2].Type.IsBool())
	assert.Equal(t, "bFast", fn.Params[2].Name)
	assert.True(t, fn.Params[3].Type.IsBool())
}

func TestInspectMethodDeclaration(t *testing.T) {
	unit := inspect(t, `
class FScanner
{
public:
	bool IsActive() const;
	void Reset();
};
`)
	require.Len(t, unit.Funcs, 2)
	assert.Equal(t, "IsActive", unit.Funcs[0].Name)
	assert.Equal(t, "FScanner", unit.Funcs[0].Class)
	assert.True(t, unit.Funcs[0].Returns.IsBool())
	assert.Equal(t, "Reset", unit.Funcs[1].Name)
}

func TestInspectSwitch(t *testing.T) {
	unit := inspect(t, `
void Pick(int x)
{
	switch (x)
	{
	case 1:
		x = 1;
	case 2:
		x = 2;
		break;
	case 3:
	case 4:
		x = 4;
		return;
	default:
		break;
	}
}
`)
	require.Len(t, unit.Switches, 1)
	sw := unit.Switches[0]
	require.Len(t, sw.Cases, 5)

	assert.False(t, sw.Cases[0].Terminated, "case 1 does not break")
	assert.False(t, sw.Cases[0].Empty)
	assert.Equal(t, 7, sw.Cases[0].LastStmt.Line)

	assert.True(t, sw.Cases[1].Terminated, "case 2 breaks")
	assert.True(t, sw.Cases[2].Empty, "case 3 is a pure label cascade")
	assert.True(t, sw.Cases[3].Terminated, "case 4 returns")

	assert.True(t, sw.Cases[4].IsDefault)
	assert.True(t, sw.Cases[4].Terminated)
	assert.True(t, sw.HasDefault())
}

func TestInspectSwitchFallthroughComment(t *testing.T) {
	unit := inspect(t, `
void Pick(int x)
{
	switch (x)
	{
	case 1:
		x = 1;
		// falls through
	case 2:
		x = 2;
		break;
	default:
		break;
	}
}
`)
	require.Len(t, unit.Switches, 1)
	sw := unit.Switches[0]
	require.Len(t, sw.Cases, 3)
	assert.True(t, sw.Cases[0].Fallthrough, "marker comment recognized")
}

func TestInspectIfArms(t *testing.T) {
	unit := inspect(t, `
void Tick(bool bReady, int& Count)
{
	if (bReady)
	{
		Count++;
	}
	else
		Count--;

	if (Count > 0)
		Count = 0;
}
`)
	require.Len(t, unit.IfArms, 3)
	assert.True(t, unit.IfArms[0].Compound)
	assert.True(t, unit.IfArms[1].Else)
	assert.False(t, unit.IfArms[1].Compound)
	assert.False(t, unit.IfArms[2].Compound)
}

func TestInspectBracePlacement(t *testing.T) {
	unit := inspect(t, `
void Good()
{
	if (true)
	{
	}
}

void Bad() {
}
`)
	var function, ifBlock []model.Brace
	for _, brace := range unit.Braces {
		switch brace.Context {
		case "function":
			function = append(function, brace)
		case "if":
			ifBlock = append(ifBlock, brace)
		}
	}
	require.Len(t, function, 2)
	assert.True(t, function[0].OwnLine)
	assert.False(t, function[1].OwnLine)
	require.Len(t, ifBlock, 1)
	assert.True(t, ifBlock[0].OwnLine)
}

func TestInspectMacroScope(t *testing.T) {
	unit := inspect(t, `
#define UE_MAX_RETRIES 3
#define HELPER(x) ((x) * 2)

void Run()
{
#define LOCAL_TWEAK 1
}
`)
	require.Len(t, unit.Macros, 3)
	assert.Equal(t, "UE_MAX_RETRIES", unit.Macros[0].Name)
	assert.True(t, unit.Macros[0].GlobalScope)
	assert.Equal(t, "HELPER", unit.Macros[1].Name)
	assert.True(t, unit.Macros[1].GlobalScope)
	assert.Equal(t, "LOCAL_TWEAK", unit.Macros[2].Name)
	assert.False(t, unit.Macros[2].GlobalScope)
}

func TestInspectVariablesCommentsStrings(t *testing.T) {
	unit := inspect(t, `
// master list of hosts
static bool ready = false;
const char* banner = "whitelist enabled";
`)
	require.NotEmpty(t, unit.Vars)
	assert.Equal(t, "ready", unit.Vars[0].Name)
	assert.True(t, unit.Vars[0].Type.IsBool())

	require.Len(t, unit.Comments, 1)
	assert.Contains(t, unit.Comments[0].Text, "master")
	require.Len(t, unit.Strings, 1)
	assert.Contains(t, unit.Strings[0].Text, "whitelist")
}

func TestInspectEnum(t *testing.T) {
	unit := inspect(t, `
enum class EWeaponState : uint8
{
	Idle,
	Firing,
};
`)
	require.Len(t, unit.Enums, 1)
	assert.Equal(t, "EWeaponState", unit.Enums[0].Name)
	assert.True(t, unit.Enums[0].Scoped)
}

func TestInspectWeakDerefGuards(t *testing.T) {
	unit := inspect(t, `
void Follow(TWeakObjectPtr<AActor> Target)
{
	Target.Get()->Move();
	if (Target.IsValid())
	{
		Target.Get()->Move();
	}
}
`)
	var derefs []model.Deref
	for _, d := range unit.Derefs {
		if d.Object == "Target" {
			derefs = append(derefs, d)
		}
	}
	require.GreaterOrEqual(t, len(derefs), 2)
	assert.False(t, derefs[0].Guarded)
	assert.True(t, derefs[len(derefs)-1].Guarded)
}

func TestInspectPartialUnit(t *testing.T) {
	unit := inspect(t, `
class FBroken {
	int Value
};
void Fine() {}
`)
	assert.True(t, unit.Partial)
}

func TestInspectOutOfLineMethod(t *testing.T) {
	unit := inspect(t, `
bool FScanner::IsActive() const
{
	return true;
}
`)
	require.Len(t, unit.Funcs, 1)
	assert.Equal(t, "IsActive", unit.Funcs[0].Name)
	assert.Equal(t, "FScanner", unit.Funcs[0].Class)
}
