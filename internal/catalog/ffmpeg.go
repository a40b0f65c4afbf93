package catalog

// ffmpegFeatures is the registry of optional FFmpeg features avbuild can
// detect and enable, in flag-emission order. The default-on tier covers
// the license toggles, the mainstream video/audio codecs and TLS; niche
// image formats, next-generation codecs and nonfree encoders are opt-in.
var ffmpegFeatures = []FeatureSpec{
	// License toggles. No external dependency; these also survive into the
	// minimal fallback configuration.
	{Name: "gpl", Strategy: AlwaysTrue, Flags: []string{"--enable-gpl"}, Default: true},
	{Name: "version3", Strategy: AlwaysTrue, Flags: []string{"--enable-version3"}, Default: true},

	// Video codecs.
	{Name: "libx264", Strategy: PackageMetadata, Target: "x264", Flags: []string{"--enable-libx264"}, Default: true},
	{Name: "libx265", Strategy: PackageMetadata, Target: "x265", Flags: []string{"--enable-libx265"}, Default: true},
	{Name: "libvpx", Strategy: PackageMetadata, Target: "vpx", Flags: []string{"--enable-libvpx"}, Default: true},

	// Audio codecs. LAME ships no pkg-config file, so it is probed through
	// its public header.
	{Name: "libmp3lame", Strategy: HeaderInclusion, Target: "lame/lame.h", Flags: []string{"--enable-libmp3lame"}, Default: true},
	{Name: "libopus", Strategy: PackageMetadata, Target: "opus", Flags: []string{"--enable-libopus"}, Default: true},
	{Name: "libvorbis", Strategy: PackageMetadata, Target: "vorbis", Flags: []string{"--enable-libvorbis"}, Default: true},

	// TLS for network protocols.
	{Name: "openssl", Strategy: PackageMetadata, Target: "openssl", Flags: []string{"--enable-openssl"}, Default: true},

	// Text rendering and subtitles.
	{Name: "libfreetype", Strategy: PackageMetadata, Target: "freetype2", Flags: []string{"--enable-libfreetype"}, Default: true},
	{Name: "libass", Strategy: PackageMetadata, Target: "libass", Flags: []string{"--enable-libass"}, Default: true},

	// Opt-in tier: image formats and next-generation video codecs.
	{Name: "libwebp", Strategy: PackageMetadata, Target: "libwebp", Flags: []string{"--enable-libwebp"}},
	{Name: "libaom", Strategy: PackageMetadata, Target: "aom", Flags: []string{"--enable-libaom"}},
	{Name: "libsvtav1", Strategy: PackageMetadata, Target: "SvtAv1Enc", Flags: []string{"--enable-libsvtav1"}},
	{Name: "libdav1d", Strategy: PackageMetadata, Target: "dav1d", Flags: []string{"--enable-libdav1d"}},

	// Opt-in tier: nonfree encoders and hardware acceleration.
	{Name: "libfdk-aac", Strategy: PackageMetadata, Target: "fdk-aac", Flags: []string{"--enable-libfdk-aac", "--enable-nonfree"}},
	{Name: "cuda-nvcc", Strategy: CommandExists, Target: "nvcc", Flags: []string{"--enable-cuda-nvcc", "--enable-nonfree"}},

	// Opt-in tier: ffplay support.
	{Name: "sdl2", Strategy: CommandExists, Target: "sdl2-config", Flags: []string{"--enable-sdl2"}},
}

var builtin = New(ffmpegFeatures...)

// Builtin returns the process-wide FFmpeg feature catalog. It is built
// once from static data and never mutated.
func Builtin() *Catalog {
	return builtin
}
