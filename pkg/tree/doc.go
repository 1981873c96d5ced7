// Package tree loads resolved dependency trees into [artifact.Node] form.
//
// Trees come from the Maven dependency plugin, either as files written by an
// earlier run or by invoking Maven directly through a [Builder].
//
// # Formats
//
// [ReadJSON] decodes the plugin's JSON output (-DoutputType=json):
//
//	{
//	  "groupId": "io.strimzi", "artifactId": "api", "version": "0.40.0", "type": "jar",
//	  "children": [
//	    {"groupId": "io.fabric8", "artifactId": "kubernetes-client", "version": "6.10.0",
//	     "type": "jar", "scope": "compile", "children": []}
//	  ]
//	}
//
// [ReadText] parses the default text output, with or without the [INFO]
// prefix of the Maven console log:
//
//	io.strimzi:api:jar:0.40.0
//	+- io.fabric8:kubernetes-client:jar:6.10.0:compile
//	|  \- io.fabric8:kubernetes-model-core:jar:6.10.0:compile
//	\- org.slf4j:slf4j-api:jar:1.7.36:compile
//
// [Load] picks the reader from the file extension.
package tree
