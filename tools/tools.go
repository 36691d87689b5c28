//go:build tools

// Пакет tools предназначен для фиксации зависимостей инструментов.
// Wire-кодек proto/bookshop/v1 написан вручную поверх protowire,
// генераторы protoc-gen-go и protoc-gen-go-grpc не используются,
// поэтому импорты-заглушки не нужны.
package tools
