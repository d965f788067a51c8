package mapping

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemapper(t *testing.T) {
	t.Parallel()

	tb := NewTable("intermediary", "srg")
	c, err := tb.AddClass("net/minecraft/class_1", "net/minecraft/world/Foo")
	require.NoError(t, err)
	_, err = c.AddField("field_1", "f_1_", "")
	require.NoError(t, err)
	_, err = c.AddMethod("method_2", "m_2_", "(Lnet/minecraft/class_1;)V")
	require.NoError(t, err)

	r := NewRemapper(tb, Relocation{From: "org/spongepowered/", To: "org/spongepowered/reloc/"})

	require.Equal(t, "net/minecraft/world/Foo", r.MapClass("net/minecraft/class_1"))
	require.Equal(t, "org/spongepowered/reloc/asm/Mixin", r.MapClass("org/spongepowered/asm/Mixin"))
	require.Equal(t, "java/lang/Object", r.MapClass("java/lang/Object"))

	require.Equal(t, "f_1_", r.MapField("net/minecraft/class_1", "field_1"))
	// unknown owner, the flat index still knows the name
	require.Equal(t, "f_1_", r.MapField("com/example/Mixin", "field_1"))
	require.Equal(t, "other", r.MapField("com/example/Mixin", "other"))

	require.Equal(t, "m_2_", r.MapMethod("net/minecraft/class_1", "method_2", "(Lnet/minecraft/class_1;)V"))
	require.Equal(t, "(Lnet/minecraft/world/Foo;Lorg/spongepowered/reloc/A;)V", r.MapDescriptor("(Lnet/minecraft/class_1;Lorg/spongepowered/A;)V"))

	require.Equal(t, "org.spongepowered.reloc.asm.Mixin", r.MapValue("org.spongepowered.asm.Mixin"))
	require.Equal(t, "m_2_", r.MapValue("method_2"))
	require.Equal(t, "net.minecraft.world.Foo", r.MapValue("net.minecraft.class_1"))
	require.Equal(t, "unrelated", r.MapValue("unrelated"))

	require.Equal(t, "net/minecraft/world/Foo.m_2_(Lnet/minecraft/world/Foo;)V", r.MapSymbol("net/minecraft/class_1.method_2(Lnet/minecraft/class_1;)V"))
	require.Equal(t, "net/minecraft/world/Foo.f_1_", r.MapSymbol("net/minecraft/class_1.field_1"))
	require.Equal(t, "net/minecraft/world/Foo", r.MapSymbol("net/minecraft/class_1"))
}

func TestFlattenSkipsAmbiguous(t *testing.T) {
	t.Parallel()

	tb := NewTable("a", "b")
	c1, err := tb.AddClass("A", "X")
	require.NoError(t, err)
	c2, err := tb.AddClass("B", "Y")
	require.NoError(t, err)
	_, err = c1.AddField("f", "one", "")
	require.NoError(t, err)
	_, err = c2.AddField("f", "two", "")
	require.NoError(t, err)
	_, err = c2.AddField("g", "three", "")
	require.NoError(t, err)
	_, err = c1.AddField("h", "h", "")
	require.NoError(t, err)

	require.Equal(t, map[string]string{"g": "three"}, tb.Flatten())
}

func TestRemapperPrefersOwner(t *testing.T) {
	t.Parallel()

	tb := NewTable("a", "b")
	c1, err := tb.AddClass("A", "X")
	require.NoError(t, err)
	c2, err := tb.AddClass("B", "Y")
	require.NoError(t, err)
	_, err = c1.AddField("f", "one", "")
	require.NoError(t, err)
	// kept as is in B, so only A contributes to the flat index
	_, err = c2.AddField("f", "f", "")
	require.NoError(t, err)
	_, err = c2.AddMethod("m", "m", "()V")
	require.NoError(t, err)
	_, err = c1.AddMethod("m", "run", "()V")
	require.NoError(t, err)

	r := NewRemapper(tb)
	require.Equal(t, "f", r.MapField("B", "f"))
	require.Equal(t, "one", r.MapField("C", "f"))
	require.Equal(t, "m", r.MapMethod("B", "m", "()V"))
	require.Equal(t, "run", r.MapMethod("C", "m", "()V"))
}
