/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package secret holds string values that must not be displayed by accident.
//
// A Secured Value masks itself on every implicit display path: fmt verbs,
// String, GoString, JSON and text marshalling, slog and zerolog. The mask has
// one '*' per character of the raw value, so
//
//	secret.New("p@ss1234", secret.Secured)
//
// prints as "********". The raw value is only available through Reveal.
//
// An Unsecured Value displays its raw value. It exists for values that are
// classified case by case, such as a username that shares a type with a
// password.
package secret
